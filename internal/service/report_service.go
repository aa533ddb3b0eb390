package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/raywall/apigw-report/internal/export"
	"github.com/raywall/apigw-report/internal/flatten"
	"github.com/raywall/apigw-report/internal/reporterr"
	dto "github.com/raywall/apigw-report/pkg/types"
)

// RestAPISource é o colaborador do API Gateway.
type RestAPISource interface {
	ListRestAPIs(ctx context.Context) ([]dto.RestAPI, error)
	ListResources(ctx context.Context, apiID string) ([]dto.Resource, error)
}

// ReportService busca as REST APIs com seus recursos e gera o relatório.
type ReportService struct {
	Source RestAPISource
	Logger *slog.Logger
}

// NewReportService cria um ReportService. Logger nil usa slog.Default().
func NewReportService(source RestAPISource, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{Source: source, Logger: logger}
}

func (s *ReportService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Snapshot é o resultado bruto de uma consulta: APIs na ordem do colaborador e
// os recursos sem filtro de cada uma.
type Snapshot struct {
	APIs      []dto.RestAPI
	Resources map[string][]dto.Resource
}

// Empty informa se a consulta não retornou nenhuma REST API.
func (s Snapshot) Empty() bool {
	return len(s.APIs) == 0
}

// Collect lista as REST APIs e depois os recursos de cada uma, uma chamada por
// vez. A primeira falha aborta a coleta inteira.
func (s *ReportService) Collect(ctx context.Context) (Snapshot, error) {
	apis, err := s.Source.ListRestAPIs(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing rest APIs: %w", err)
	}
	s.logger().Debug("rest APIs listed", "count", len(apis))

	snap := Snapshot{APIs: apis, Resources: make(map[string][]dto.Resource, len(apis))}
	for _, api := range apis {
		resources, err := s.Source.ListResources(ctx, api.ID)
		if err != nil {
			return Snapshot{}, fmt.Errorf("listing resources of %s: %w", api.ID, err)
		}
		s.logger().Debug("resources listed", "rest_api_id", api.ID, "count", len(resources))
		snap.Resources[api.ID] = resources
	}
	return snap, nil
}

// Table achata o snapshot na tabela CSV combinada.
func Table(snap Snapshot, filter flatten.MethodFilter) flatten.Table {
	apiRows := make([]flatten.FlatAPIRow, 0, len(snap.APIs))
	var resourceRows []flatten.FlatResourceRow
	for _, api := range snap.APIs {
		apiRows = append(apiRows, flatten.FlattenAPI(api))
		resourceRows = append(resourceRows, flatten.FlattenResources(api.ID, snap.Resources[api.ID], filter)...)
	}
	return flatten.Tabulate(flatten.MergeRows(apiRows, resourceRows))
}

// Tree aninha o snapshot no relatório JSON.
func Tree(snap Snapshot, filter flatten.MethodFilter) dto.Report {
	return flatten.ToJSONTree(snap.APIs, snap.Resources, filter)
}

// Render serializa o snapshot no formato pedido.
func Render(snap Snapshot, filter flatten.MethodFilter, format export.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format.IsJSON() {
		err = export.WriteJSON(&buf, Tree(snap, filter), format == export.FormatJSONPretty)
	} else {
		err = export.WriteCSV(&buf, Table(snap, filter))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Request descreve uma execução de exportação.
type Request struct {
	Region     string
	Filter     flatten.MethodFilter
	Format     export.Format
	OutputDir  string
	Label      string
	AllowEmpty bool
	Now        time.Time
}

// Result descreve o relatório gravado.
type Result struct {
	Path string
	APIs int
}

// Export coleta, renderiza e grava o arquivo do relatório. Sem REST APIs e com
// AllowEmpty desligado retorna um erro que embrulha reporterr.ErrNoRestAPIs e
// não grava nada.
func (s *ReportService) Export(ctx context.Context, req Request) (*Result, error) {
	snap, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Empty() && !req.AllowEmpty {
		return nil, fmt.Errorf("%w for %s region", reporterr.ErrNoRestAPIs, req.Region)
	}

	content, err := Render(snap, req.Filter, req.Format)
	if err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	name := export.FileName(now, req.Region, req.Filter.Methods(), req.Label, req.Format)
	f, path, err := export.Create(req.OutputDir, name)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}

	s.logger().Info("report written", "path", path, "rest_apis", len(snap.APIs), "format", string(req.Format))
	return &Result{Path: path, APIs: len(snap.APIs)}, nil
}
