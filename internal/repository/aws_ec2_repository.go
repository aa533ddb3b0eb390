package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/raywall/apigw-report/internal/client"
)

// ErrRegionListingDenied indica que a identidade não pode chamar DescribeRegions.
var ErrRegionListingDenied = errors.New("not authorized to describe regions")

// EC2API é a parte do cliente EC2 usada pelo repositório.
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// EC2Repository lista as regiões habilitadas na conta.
type EC2Repository struct {
	API EC2API
}

// NewEC2Repository cria o repositório sobre o cliente AWS compartilhado.
func NewEC2Repository(c *client.AWSClient) *EC2Repository {
	return &EC2Repository{API: c.EC2}
}

// ListRegions retorna os nomes das regiões habilitadas, ordenados.
func (r *EC2Repository) ListRegions(ctx context.Context) ([]string, error) {
	const op = "regions list"
	out, err := r.API.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		if isAPIErrorCode(err, "UnauthorizedOperation") {
			return nil, errors.Join(ErrRegionListingDenied, collaboratorError(op, err))
		}
		return nil, collaboratorError(op, err)
	}
	if err := checkResponseCode(op, out.ResultMetadata); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(out.Regions))
	regions := make([]string, 0, len(out.Regions))
	for _, reg := range out.Regions {
		name := aws.ToString(reg.RegionName)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		regions = append(regions, name)
	}
	sort.Strings(regions)
	return regions, nil
}
