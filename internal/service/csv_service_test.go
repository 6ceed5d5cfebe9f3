package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExport(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.inventoryService().Create(context.Background(), env.tenant, &CreateInventoryRequest{
		Name: "Bakso Sapi", Category: "Makanan", SKU: "BKS-001",
		ProductionCost: 10000, LaborCost: 2000, OverheadCost: 2000,
		CurrentStock: 50,
	})
	require.NoError(t, err)

	svc := NewCSVService(env.store.Products())
	data, filename, err := svc.Export(context.Background(), env.tenant.User.ID)
	require.NoError(t, err)

	assert.Equal(t, "products-"+time.Now().Format("2006-01-02")+".csv", filename)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Description,HPP,Target Margin,Current Price,Production Cost,Labor Cost,Overhead Cost,Waste Factor,Unit Production,Category,SKU", lines[0])
	assert.Contains(t, lines[1], "Bakso Sapi")
	assert.Contains(t, lines[1], "14700")
	assert.Contains(t, lines[1], "BKS-001")
}

func TestCSVImport(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCSVService(env.store.Products())
	ctx := context.Background()

	csvText := "Name,Description,HPP,Target Margin,Current Price,Production Cost,Labor Cost,Overhead Cost,Waste Factor,Unit Production,Category,SKU\n" +
		"Bakso Sapi,Bakso daging sapi,0,0.3,25000,10000,2000,2000,5,1,Makanan,BKS-001\n" +
		"Es Teh,,0,0.5,,2000,0,0,0,1,Minuman,\n"

	result, err := svc.Import(ctx, env.tenant, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Failed)

	// HPP is derived server-side, never trusted from the upload.
	bakso, err := env.store.Products().FindBySKU(ctx, "BKS-001")
	require.NoError(t, err)
	assert.InDelta(t, 14700, bakso.HPP, 0.001)
	require.NotNil(t, bakso.CurrentPrice)
	assert.Equal(t, 25000.0, *bakso.CurrentPrice)

	// The SKU-less row got a synthetic SKU so re-imports update in place.
	esTeh, err := env.store.Products().FindBySKU(ctx, "IMP-ES-TEH")
	require.NoError(t, err)
	assert.Equal(t, "Es Teh", esTeh.Name)

	// Re-importing the same file updates instead of duplicating.
	result, err = svc.Import(ctx, env.tenant, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Updated)

	products, err := env.store.Products().FindAllByUser(ctx, env.tenant.User.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCSVImportRowErrorsIsolated(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCSVService(env.store.Products())

	csvText := "Name,Production Cost,Category,SKU\n" +
		"Produk Valid,10000,Makanan,OK-001\n" +
		",5000,Makanan,NONAME-001\n" +
		"Produk Minus,-100,Makanan,MIN-001\n" +
		"Produk Rusak,abc,Makanan,BAD-001\n"

	result, err := svc.Import(context.Background(), env.tenant, strings.NewReader(csvText))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Failed)
	assert.Len(t, result.Errors, 3)
}

func TestCSVImportRejectsMissingHeader(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCSVService(env.store.Products())

	_, err := svc.Import(context.Background(), env.tenant, strings.NewReader(""))
	assert.Error(t, err)

	_, err = svc.Import(context.Background(), env.tenant, strings.NewReader("Foo,Bar\n1,2\n"))
	assert.Error(t, err)
}

func TestCSVTemplate(t *testing.T) {
	svc := NewCSVService(nil)
	data, filename := svc.Template()

	assert.Equal(t, "template-import-produk.csv", filename)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Contoh Produk")
	assert.Contains(t, lines[1], "PROD-001")
}
