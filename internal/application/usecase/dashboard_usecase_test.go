package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// fakeConsole keeps everything written to it as plain lines.
type fakeConsole struct {
	lines  []string
	cards  [][]types.SummaryCard
	charts []*types.ServiceChart
	bars   [][]types.UsageBar
	tables []*fakeTable
}

func (c *fakeConsole) Print(a ...interface{}) { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Println(a ...interface{}) { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.lines = append(c.lines, "INFO "+fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.lines = append(c.lines, "WARN "+fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.lines = append(c.lines, "ERROR "+fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.lines = append(c.lines, "OK "+fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface {
	t := &fakeTable{}
	c.tables = append(c.tables, t)
	return t
}
func (c *fakeConsole) DisplaySummaryCards(cards []types.SummaryCard) {
	c.cards = append(c.cards, cards)
}
func (c *fakeConsole) DisplayStackedBars(_ string, chart *types.ServiceChart) {
	c.charts = append(c.charts, chart)
}
func (c *fakeConsole) DisplayUsageBars(_ string, bars []types.UsageBar) {
	c.bars = append(c.bars, bars)
}

func (c *fakeConsole) output() string { return strings.Join(c.lines, "\n") }

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}
func (t *fakeTable) Render() string { return strings.Join(t.columns, "|") }

type fakeExport struct {
	formats []string
	report  entity.TagCostReport
}

func (e *fakeExport) export(format string, report entity.TagCostReport, name, dir string) (string, error) {
	e.formats = append(e.formats, format)
	e.report = report
	return dir + "/" + name + "." + format, nil
}

func (e *fakeExport) ExportTagCostToCSV(r entity.TagCostReport, name, dir string) (string, error) {
	return e.export("csv", r, name, dir)
}
func (e *fakeExport) ExportTagCostToJSON(r entity.TagCostReport, name, dir string) (string, error) {
	return e.export("json", r, name, dir)
}
func (e *fakeExport) ExportTagCostToPDF(r entity.TagCostReport, name, dir string) (string, error) {
	return e.export("pdf", r, name, dir)
}

type fakeCredentials struct {
	profiles []string
	params   entity.AwsAccountCreateParams
	err      error
}

func (f *fakeCredentials) GetAWSProfiles() []string { return f.profiles }
func (f *fakeCredentials) GetProfileCredentials(context.Context, string) (entity.AwsAccountCreateParams, error) {
	return f.params, f.err
}

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestUseCase(api *fakeAPI) (*DashboardUseCase, *fakeConsole, *fakeExport, *fakeCredentials) {
	con := &fakeConsole{}
	exp := &fakeExport{}
	creds := &fakeCredentials{}
	uc := NewDashboardUseCase(api, NewAccountContext(api, nil), exp, creds, con, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc, con, exp, creds
}

func TestResolveAccount(t *testing.T) {
	uc, _, _, _ := newTestUseCase(&fakeAPI{accounts: listing(testAccounts, nil)})

	acc, err := uc.ResolveAccount(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "a1", acc.ID)

	acc, err = uc.ResolveAccount(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "a2", acc.ID)

	_, err = uc.ResolveAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestRunOverview(t *testing.T) {
	var got entity.CostRequest
	api := &fakeAPI{
		costs: func(r entity.CostRequest) (*entity.CostSummary, error) {
			got = r
			return &entity.CostSummary{TotalCost: 100, AverageCost: 5.5, UniqueServices: 3}, nil
		},
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) {
			row := entity.NewServiceMonthlyCost("2024-05")
			row.Set("EC2", 60)
			return []entity.ServiceMonthlyCost{*row}, nil
		},
	}
	uc, con, _, _ := newTestUseCase(api)

	err := uc.RunOverview(context.Background(), &testAccounts[0], &types.ViewArgs{Region: "eu-west-1", Start: "2024-01-01"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", got.Start)
	assert.Equal(t, "2024-06-30", got.End)
	assert.Equal(t, "eu-west-1", got.Region)
	assert.Equal(t, "AK1", got.AccessKey)

	require.Len(t, con.cards, 1)
	assert.Equal(t, []types.SummaryCard{
		{Title: "Total Cost", Value: "$100.00"},
		{Title: "Avg Daily Cost", Value: "$5.50"},
		{Title: "Unique Services", Value: "3"},
	}, con.cards[0])
	require.Len(t, con.charts, 1)
	require.Len(t, con.tables, 1)
	assert.Equal(t, [][]string{{"EC2", "$60.00"}}, con.tables[0].rows)
}

func TestRunOverview_NoData(t *testing.T) {
	api := &fakeAPI{
		costs:        func(entity.CostRequest) (*entity.CostSummary, error) { return nil, nil },
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) { return nil, nil },
	}
	uc, con, _, _ := newTestUseCase(api)

	require.NoError(t, uc.RunOverview(context.Background(), &testAccounts[0], &types.ViewArgs{}))
	assert.Contains(t, con.output(), "WARN "+MsgNoData)
	assert.Contains(t, con.output(), "WARN "+MsgNoServiceData)
	assert.Empty(t, con.charts)
}

func TestRunOverview_Error(t *testing.T) {
	boom := types.NewAPIError(500, "Something went wrong while fetching costs")
	api := &fakeAPI{
		costs:        func(entity.CostRequest) (*entity.CostSummary, error) { return nil, boom },
		serviceCosts: func(entity.CostRequest) ([]entity.ServiceMonthlyCost, error) { return nil, nil },
	}
	uc, _, _, _ := newTestUseCase(api)

	err := uc.RunOverview(context.Background(), &testAccounts[0], &types.ViewArgs{})
	assert.Equal(t, "Something went wrong while fetching costs", types.ErrorMessage(err))
}

func TestParseTagSelection(t *testing.T) {
	keys, values, err := ParseTagSelection([]string{"Team=DevOps, Platform", "Env", "Team=Data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Team", "Env"}, keys)
	assert.Equal(t, map[string][]string{
		"Team": {"DevOps", "Platform", "Data"},
		"Env":  {},
	}, values)

	_, _, err = ParseTagSelection([]string{"=x"})
	var vErr *types.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestRunTagCost_Exports(t *testing.T) {
	api := &fakeAPI{
		byTags: func(entity.TagCostRequest) (*entity.TagCostResult, error) {
			return &entity.TagCostResult{ServiceData: []entity.ServiceCostPair{{Service: "EC2", Cost: 10}, {Service: "S3", Cost: 2.5}}}, nil
		},
		byTagsMonth: func(entity.TagCostRequest) ([]entity.TagMonthlyCostRecord, error) {
			return []entity.TagMonthlyCostRecord{{Month: "2024-06", Service: "EC2", Cost: 10}}, nil
		},
	}
	uc, con, exp, _ := newTestUseCase(api)

	err := uc.RunTagCost(context.Background(), &testAccounts[0], &types.ViewArgs{
		TagFilters: []string{"Team=DevOps"},
		ReportName: "team",
		ReportType: []string{"csv", "pdf", "xml"},
		Dir:        "/tmp/out",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"csv", "pdf"}, exp.formats)
	assert.Equal(t, 12.5, exp.report.Total)
	assert.Equal(t, "2024-05-31", exp.report.Start)
	assert.Equal(t, entity.TagFilters{"Team": {"DevOps"}}, exp.report.TagFilters)
	assert.Equal(t, fixedNow, exp.report.GeneratedAt)

	out := con.output()
	assert.Contains(t, out, "INFO Tags: Team=DevOps")
	assert.Contains(t, out, "WARN Unsupported report type: xml")
	assert.Contains(t, out, "OK Successfully exported to CSV: /tmp/out/team.csv")
	require.Len(t, con.tables, 1)
	assert.Equal(t, []string{"Total", "$12.50"}, con.tables[0].rows[2])
}

func TestRunTagCost_NoKeys(t *testing.T) {
	api := &fakeAPI{}
	uc, con, exp, _ := newTestUseCase(api)

	require.NoError(t, uc.RunTagCost(context.Background(), &testAccounts[0], &types.ViewArgs{ReportName: "x"}))
	assert.Empty(t, api.Calls())
	assert.Empty(t, exp.formats)
	assert.Contains(t, con.output(), "WARN "+MsgNoTagData)
}

func TestRunBudgets(t *testing.T) {
	var got entity.BudgetRequest
	api := &fakeAPI{
		budgets: func(r entity.BudgetRequest) (*entity.BudgetResponse, error) {
			got = r
			return &entity.BudgetResponse{
				AccountID: "123456789012",
				Budgets: []entity.BudgetRecord{
					{Name: "Monthly", Budget: "$1,000.00", AmountUsed: "$1,000.00"},
				},
			}, nil
		},
	}
	uc, con, _, _ := newTestUseCase(api)

	require.NoError(t, uc.RunBudgets(context.Background(), &testAccounts[1]))
	assert.Equal(t, "AK2", got.AccessKey)
	assert.Equal(t, types.DefaultRegion, got.Region)

	require.Len(t, con.bars, 1)
	assert.Equal(t, types.UsageBar{
		Label:   "Monthly",
		Caption: "Used: $1000.00 / $1000.00",
		Percent: 100,
		Level:   types.UsageCritical,
	}, con.bars[0][0])
}

func TestRunBudgets_Empty(t *testing.T) {
	api := &fakeAPI{
		budgets: func(entity.BudgetRequest) (*entity.BudgetResponse, error) {
			return &entity.BudgetResponse{AccountID: "1"}, nil
		},
	}
	uc, con, _, _ := newTestUseCase(api)

	require.NoError(t, uc.RunBudgets(context.Background(), &testAccounts[0]))
	assert.Contains(t, con.output(), "INFO "+MsgNoBudgets)
	assert.Empty(t, con.bars)
}

func TestRunAccountUpdate_MergesPatch(t *testing.T) {
	var gotID string
	var got entity.AwsAccountUpdateParams
	api := &fakeAPI{
		accounts: listing(testAccounts, nil),
		updAccount: func(id string, p entity.AwsAccountUpdateParams) (*entity.AwsAccount, error) {
			gotID, got = id, p
			return &entity.AwsAccount{ID: id}, nil
		},
	}
	uc, con, _, _ := newTestUseCase(api)

	require.NoError(t, uc.RunAccountUpdate(context.Background(), "dev", AccountPatch{SecretKey: "NEW"}))
	assert.Equal(t, "a2", gotID)
	assert.Equal(t, "dev", *got.Name)
	assert.Equal(t, "AK2", *got.AccessKey)
	assert.Equal(t, "NEW", *got.SecretKey)
	assert.Contains(t, con.output(), "OK "+MsgAccountUpdated)
}

func TestRunAccountImport(t *testing.T) {
	var got entity.AwsAccountCreateParams
	api := &fakeAPI{
		accounts: listing(testAccounts, nil),
		addAccount: func(p entity.AwsAccountCreateParams) (*entity.AwsAccount, error) {
			got = p
			return &entity.AwsAccount{ID: "a3"}, nil
		},
	}
	uc, _, _, creds := newTestUseCase(api)
	creds.params = entity.AwsAccountCreateParams{Name: "staging", AccessKey: "AK3", SecretKey: "SK3"}

	require.NoError(t, uc.RunAccountImport(context.Background(), "staging", "stage"))
	assert.Equal(t, entity.AwsAccountCreateParams{Name: "stage", AccessKey: "AK3", SecretKey: "SK3"}, got)
}

func TestRunUserShow_NotSignedIn(t *testing.T) {
	api := &fakeAPI{user: func() (*entity.User, error) { return nil, nil }}
	uc, _, _, _ := newTestUseCase(api)

	assert.ErrorIs(t, uc.RunUserShow(context.Background()), types.ErrNotAuthenticated)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("abc"))
	assert.Equal(t, "****WXYZ", MaskSecret("ABCDWXYZ"))
}
