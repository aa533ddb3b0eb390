package client

import (
	"context"
	"testing"
)

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"defaults", Options{}, 0},
		{"region only", Options{Region: "us-east-2"}, 1},
		{"blank region ignored", Options{Region: "  "}, 0},
		{"profile", Options{Region: "eu-west-1", Profile: "audit"}, 2},
		{"static keys", Options{AccessKey: "AKID", SecretKey: "SECRET"}, 1},
		{"half static keys ignored", Options{AccessKey: "AKID"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(loadOptions(tt.opts)); got != tt.want {
				t.Errorf("len(loadOptions) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewWithStaticCredentials(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent/credentials")

	c, err := New(context.Background(), Options{Region: "us-east-2", AccessKey: "AKID", SecretKey: "SECRET"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Region != "us-east-2" {
		t.Errorf("Region = %q, want us-east-2", c.Region)
	}
	if c.APIGW == nil || c.EC2 == nil || c.STS == nil {
		t.Error("expected all service clients to be built")
	}

	creds, err := c.Config.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "AKID" {
		t.Errorf("AccessKeyID = %q, want AKID", creds.AccessKeyID)
	}
}

func TestLoadAccountIDCached(t *testing.T) {
	c := &AWSClient{AccountID: "123456789012"}
	got, err := c.LoadAccountID(context.Background())
	if err != nil || got != "123456789012" {
		t.Errorf("LoadAccountID() = %q, %v", got, err)
	}
}
