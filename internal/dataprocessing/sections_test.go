package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chargebackFixture = "January MID Report,,,\n" +
	"MID,Chargebacks,Payments,CB%\n" +
	"MID-A,5,1000,0.005\n" +
	"MID-B,2,800,0.0025\n" +
	"Total/Avg,10,2000,0.005\n" +
	",,,\n" +
	"Case ID,Filing Date,Transaction ID,Reason,Amount,Currency,Payment Method,Order ID,SKU,Product,Country\n" +
	"CB-001,Jan 5 2024,TX-1,Fraud,49.99,EUR,MID-A,ORD-1,SKU-1,Widget,DE\n" +
	"CB-002,1/8/24,TX-2,Product not received,19.99,EUR,MID-B,ORD-2,SKU-2,Gadget,FR\n"

func TestExtractChargebacks(t *testing.T) {
	sheet := ExtractChargebacks(chargebackFixture)

	require.Len(t, sheet.Summary, 2)
	assert.Equal(t, "MID-A", sheet.Summary[0].MID)
	assert.Equal(t, 5, sheet.Summary[0].Chargebacks)
	assert.Equal(t, 1000, sheet.Summary[0].Payments)
	assert.Equal(t, 0.005, sheet.Summary[0].CBPct)

	require.NotNil(t, sheet.Total)
	assert.Equal(t, "Total/Avg", sheet.Total.MID)
	assert.Equal(t, 10, sheet.Total.Chargebacks)
	assert.Equal(t, 2000, sheet.Total.Payments)

	require.Len(t, sheet.Details, 2)
	assert.Equal(t, "CB-001", sheet.Details[0].CaseID)
	assert.Equal(t, "2024-01-05", sheet.Details[0].Date)
	assert.Equal(t, 49.99, sheet.Details[0].Amount)
	assert.Equal(t, "DE", sheet.Details[0].Country)
	assert.Equal(t, "2024-01-08", sheet.Details[1].Date)
}

func TestExtractChargebacksNoDetailHeader(t *testing.T) {
	raw := "January MID Report,,,\n" +
		"MID,Chargebacks,Payments,CB%\n" +
		"MID-A,5,1000,0.005\n"
	sheet := ExtractChargebacks(raw)
	require.Len(t, sheet.Summary, 1)
	assert.Nil(t, sheet.Total)
	assert.Empty(t, sheet.Details)
}

func TestExtractChargebacksSecondTotalOverwrites(t *testing.T) {
	raw := "title,,,\n" +
		"MID,Chargebacks,Payments,CB%\n" +
		"Total/Avg,1,100,0.001\n" +
		"Total/Avg,2,200,0.002\n"
	sheet := ExtractChargebacks(raw)
	require.NotNil(t, sheet.Total)
	assert.Equal(t, 2, sheet.Total.Chargebacks)
	assert.Empty(t, sheet.Summary)
}

func TestExtractChargebacksUnparsableNumbers(t *testing.T) {
	raw := "title,,,\n" +
		"MID,Chargebacks,Payments,CB%\n" +
		"MID-A,n/a,bad,??\n"
	sheet := ExtractChargebacks(raw)
	require.Len(t, sheet.Summary, 1)
	assert.Equal(t, 0, sheet.Summary[0].Chargebacks)
	assert.Equal(t, 0, sheet.Summary[0].Payments)
	assert.Equal(t, 0.0, sheet.Summary[0].CBPct)
}

func TestExtractChargebacksEmptyAndHTML(t *testing.T) {
	for _, raw := range []string{"", "<!DOCTYPE html><html></html>"} {
		sheet := ExtractChargebacks(raw)
		assert.Empty(t, sheet.Summary)
		assert.Nil(t, sheet.Total)
		assert.Empty(t, sheet.Details)
	}
}
