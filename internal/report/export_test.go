package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"call-insights-go/internal/types"
)

func TestWriteXLSX(t *testing.T) {
	aggs := []types.ManagerAggregate{
		{Manager: "Иванов", Department: "Продажи", CallsCount: 12, AvgInterruptionRate: 61.5, AvgTalkListenRatio: 2.8, Severity: types.SeverityCritical},
		{Manager: "Петров", CallsCount: 4, AvgInterruptionRate: 12.0, AvgTalkListenRatio: 1.1, Severity: types.SeverityGood},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, aggs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Communication")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Manager", rows[0][0])
	assert.Equal(t, "Иванов", rows[1][0])
	assert.Equal(t, "critical", rows[1][5])
	assert.Equal(t, "Петров", rows[2][0])
}

func TestWriteXLSXEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Communication")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
