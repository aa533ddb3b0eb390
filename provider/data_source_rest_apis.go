package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/hashicorp/terraform-plugin-sdk/v2/diag"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/schema"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/validation"

	"github.com/raywall/apigw-report/internal/export"
	"github.com/raywall/apigw-report/internal/flatten"
	"github.com/raywall/apigw-report/internal/models"
	"github.com/raywall/apigw-report/internal/reporterr"
	"github.com/raywall/apigw-report/internal/service"
	dto "github.com/raywall/apigw-report/pkg/types"
)

// DataSourceRestAPIs define o schema do data source apigwreport_rest_apis.
func DataSourceRestAPIs() *schema.Resource {
	return &schema.Resource{
		ReadContext: dataSourceRestAPIsRead,
		Schema: map[string]*schema.Schema{
			"methods": {
				Type:        schema.TypeList,
				Optional:    true,
				Description: "Keep only resources exposing at least one of these HTTP methods.",
				Elem: &schema.Schema{
					Type:         schema.TypeString,
					ValidateFunc: validation.StringInSlice(flatten.KnownMethods(), true),
				},
			},
			"rest_apis": {
				Type:     schema.TypeList,
				Computed: true,
				Elem: &schema.Resource{
					Schema: map[string]*schema.Schema{
						"id":             {Type: schema.TypeString, Computed: true},
						"name":           {Type: schema.TypeString, Computed: true},
						"description":    {Type: schema.TypeString, Computed: true},
						"created_date":   {Type: schema.TypeString, Computed: true},
						"endpoint_types": {Type: schema.TypeList, Computed: true, Elem: &schema.Schema{Type: schema.TypeString}},
						"resources": {
							Type:     schema.TypeList,
							Computed: true,
							Elem: &schema.Resource{
								Schema: map[string]*schema.Schema{
									"id":        {Type: schema.TypeString, Computed: true},
									"parent_id": {Type: schema.TypeString, Computed: true},
									"path":      {Type: schema.TypeString, Computed: true},
									"methods":   {Type: schema.TypeList, Computed: true, Elem: &schema.Schema{Type: schema.TypeString}},
								},
							},
						},
					},
				},
			},
			"account_id": {Type: schema.TypeString, Computed: true, Description: "AWS account the report was read from."},
			"csv":        {Type: schema.TypeString, Computed: true, Description: "Report rendered as pipe-delimited CSV."},
			"json":       {Type: schema.TypeString, Computed: true, Description: "Report rendered as compact JSON."},
		},
	}
}

// dataSourceRestAPIsRead (Controller) - consulta o API Gateway e popula o estado.
func dataSourceRestAPIsRead(ctx context.Context, d *schema.ResourceData, m interface{}) diag.Diagnostics {
	bundle, ok := m.(*models.ConfigurationBundle)
	if !ok || bundle == nil || bundle.Source == nil {
		return diag.FromErr(fmt.Errorf("report source not configured"))
	}

	var methods []string
	for _, v := range d.Get("methods").([]interface{}) {
		if s, ok := v.(string); ok {
			methods = append(methods, s)
		}
	}
	filter := flatten.NewMethodFilter(methods...)

	var accountID string
	if bundle.Client != nil {
		accountID = bundle.Client.AccountID
	}

	tflog.Debug(ctx, "reading rest APIs", map[string]interface{}{
		"region":     bundle.Region,
		"account_id": accountID,
		"methods":    filter.Methods(),
	})

	svc := service.NewReportService(bundle.Source, nil)
	snap, err := svc.Collect(ctx)
	if err != nil {
		return diag.FromErr(err)
	}
	if snap.Empty() {
		tflog.Info(ctx, reporterr.ErrNoRestAPIs.Error(), map[string]interface{}{"region": bundle.Region})
	}

	csvOut, err := service.Render(snap, filter, export.FormatCSV)
	if err != nil {
		return diag.FromErr(err)
	}
	jsonOut, err := service.Render(snap, filter, export.FormatJSON)
	if err != nil {
		return diag.FromErr(err)
	}

	var diags diag.Diagnostics
	if err := errors.Join(
		d.Set("account_id", accountID),
		d.Set("rest_apis", flattenTree(service.Tree(snap, filter))),
		d.Set("csv", string(csvOut)),
		d.Set("json", string(jsonOut)),
	); err != nil {
		return diag.FromErr(err)
	}

	d.SetId(dataSourceID(bundle.Region, filter))
	return diags
}

func dataSourceID(region string, filter flatten.MethodFilter) string {
	methods := filter.Methods()
	if len(methods) == 0 {
		return region + "/ALL"
	}
	sort.Strings(methods)
	return region + "/" + strings.Join(methods, ",")
}

func flattenTree(report dto.Report) []interface{} {
	out := make([]interface{}, 0, len(report.RestApis))
	for _, api := range report.RestApis {
		var endpointTypes []interface{}
		if api.EndpointConfiguration != nil {
			for _, t := range api.EndpointConfiguration.Types {
				endpointTypes = append(endpointTypes, t)
			}
		}
		resources := make([]interface{}, 0, len(api.Resources))
		for _, r := range api.Resources {
			var methods []interface{}
			for _, name := range flatten.MethodNames(r.ResourceMethods) {
				methods = append(methods, name)
			}
			resources = append(resources, map[string]interface{}{
				"id":        r.ID,
				"parent_id": deref(r.ParentID),
				"path":      r.Path,
				"methods":   methods,
			})
		}
		out = append(out, map[string]interface{}{
			"id":             api.ID,
			"name":           deref(api.Name),
			"description":    deref(api.Description),
			"created_date":   deref(api.CreatedDate),
			"endpoint_types": endpointTypes,
			"resources":      resources,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
