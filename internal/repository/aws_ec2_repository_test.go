package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/raywall/apigw-report/internal/reporterr"
)

type fakeEC2 struct {
	out *ec2.DescribeRegionsOutput
	err error
}

func (f *fakeEC2) DescribeRegions(context.Context, *ec2.DescribeRegionsInput, ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	return f.out, f.err
}

func TestListRegionsSortedAndDeduplicated(t *testing.T) {
	repo := &EC2Repository{API: &fakeEC2{out: &ec2.DescribeRegionsOutput{Regions: []ec2types.Region{
		{RegionName: aws.String("us-east-2")},
		{RegionName: aws.String("eu-west-1")},
		{RegionName: aws.String("us-east-2")},
		{},
	}}}}

	regions, err := repo.ListRegions(context.Background())
	if err != nil {
		t.Fatalf("ListRegions() error = %v", err)
	}
	if want := []string{"eu-west-1", "us-east-2"}; !reflect.DeepEqual(regions, want) {
		t.Errorf("regions = %v, want %v", regions, want)
	}
}

func TestListRegionsUnauthorized(t *testing.T) {
	repo := &EC2Repository{API: &fakeEC2{err: responseError(403, "UnauthorizedOperation")}}

	_, err := repo.ListRegions(context.Background())

	if !errors.Is(err, ErrRegionListingDenied) {
		t.Errorf("expected ErrRegionListingDenied, got %v", err)
	}
	if !reporterr.IsCollaborator(err) {
		t.Error("expected the collaborator error to be preserved")
	}
}

func TestIsAPIErrorCode(t *testing.T) {
	err := responseError(400, "BadRequestException")
	if !isAPIErrorCode(err, "BadRequestException") {
		t.Error("expected code match")
	}
	if isAPIErrorCode(err, "NotFoundException") || isAPIErrorCode(nil, "x") {
		t.Error("unexpected match")
	}
}
