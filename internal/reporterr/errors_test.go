package reporterr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCollaboratorErrorMessage(t *testing.T) {
	base := errors.New("boom")
	err := &CollaboratorError{Op: "rest APIs list", StatusCode: 403, Code: "AccessDeniedException", Err: base}

	msg := err.Error()
	if !strings.HasPrefix(msg, "403 - could not obtain rest APIs list") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "AccessDeniedException") {
		t.Errorf("expected error code in message, got %q", msg)
	}
	if !errors.Is(err, base) {
		t.Error("expected CollaboratorError to unwrap to the base error")
	}
}

func TestCollaboratorErrorWithoutStatus(t *testing.T) {
	err := &CollaboratorError{Op: "resources"}
	if got := err.Error(); got != "could not obtain resources" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestConfigurationErrorListsAlternatives(t *testing.T) {
	err := &ConfigurationError{Field: "region", Value: "mars-1", Valid: []string{"us-east-1", "us-east-2"}}
	msg := err.Error()
	if !strings.Contains(msg, `invalid region "mars-1"`) {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "us-east-1\nus-east-2") {
		t.Errorf("expected alternatives in message, got %q", msg)
	}
}

func TestClassifiers(t *testing.T) {
	wrappedCollab := fmt.Errorf("listing: %w", &CollaboratorError{Op: "x"})
	wrappedConf := fmt.Errorf("config: %w", &ConfigurationError{Field: "output"})

	if !IsCollaborator(wrappedCollab) || IsCollaborator(wrappedConf) {
		t.Error("IsCollaborator misclassified")
	}
	if !IsConfiguration(wrappedConf) || IsConfiguration(wrappedCollab) {
		t.Error("IsConfiguration misclassified")
	}
	if IsCollaborator(ErrNoRestAPIs) {
		t.Error("empty result must not be a collaborator error")
	}
}
