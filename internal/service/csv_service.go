package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"

	"github.com/google/uuid"
)

// csvHeader is the canonical column order for both export and import.
var csvHeader = []string{
	"Name", "Description", "HPP", "Target Margin", "Current Price",
	"Production Cost", "Labor Cost", "Overhead Cost", "Waste Factor",
	"Unit Production", "Category", "SKU",
}

// ImportResult reports how an uploaded CSV was processed. Rows fail
// individually; one bad row never aborts the batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

type CSVService interface {
	Export(ctx context.Context, userID uuid.UUID) (data []byte, filename string, err error)
	Import(ctx context.Context, tenant *Tenant, r io.Reader) (*ImportResult, error)
	Template() (data []byte, filename string)
}

type csvService struct {
	products repository.ProductRepository
}

func NewCSVService(products repository.ProductRepository) CSVService {
	return &csvService{products: products}
}

func (s *csvService) Export(ctx context.Context, userID uuid.UUID) ([]byte, string, error) {
	products, err := s.products.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, "", err
	}
	for _, p := range products {
		currentPrice := ""
		if p.CurrentPrice != nil {
			currentPrice = formatNumber(*p.CurrentPrice)
		}
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		record := []string{
			p.Name,
			p.Description,
			formatNumber(p.HPP),
			formatNumber(p.TargetMargin),
			currentPrice,
			formatNumber(p.ProductionCost),
			formatNumber(p.LaborCost),
			formatNumber(p.OverheadCost),
			formatNumber(p.WasteFactor),
			strconv.Itoa(p.UnitProduction),
			p.Category,
			sku,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *csvService) Import(ctx context.Context, tenant *Tenant, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validasi kolom per baris, bukan per file

	header, err := reader.Read()
	if err != nil {
		return nil, apperr.Invalid("file CSV kosong atau tidak valid")
	}
	cols := headerIndex(header)
	if _, ok := cols["name"]; !ok {
		return nil, apperr.Invalid("kolom Name wajib ada di header CSV")
	}

	result := &ImportResult{}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("baris %d: %v", row, err))
			continue
		}

		product, err := s.productFromRecord(cols, record, tenant.Business.ID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("baris %d: %v", row, err))
			continue
		}

		created, err := s.products.UpsertBySKU(ctx, product)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("baris %d: %v", row, err))
			continue
		}
		if created {
			result.Imported++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (s *csvService) Template() ([]byte, string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(csvHeader)
	_ = w.Write([]string{
		"Contoh Produk", "Deskripsi produk anda", "15000", "0.3", "25000",
		"10000", "2000", "2000", "0.05", "1", "Makanan", "PROD-001",
	})
	w.Flush()
	return buf.Bytes(), "template-import-produk.csv"
}

func (s *csvService) productFromRecord(cols map[string]int, record []string, businessID uuid.UUID) (*model.Product, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return nil, fmt.Errorf("nama produk kosong")
	}

	productionCost, err := parseNumber(field("production cost"))
	if err != nil {
		return nil, fmt.Errorf("production cost tidak valid: %w", err)
	}
	laborCost, err := parseNumber(field("labor cost"))
	if err != nil {
		return nil, fmt.Errorf("labor cost tidak valid: %w", err)
	}
	overheadCost, err := parseNumber(field("overhead cost"))
	if err != nil {
		return nil, fmt.Errorf("overhead cost tidak valid: %w", err)
	}
	wasteFactor, err := parseNumber(field("waste factor"))
	if err != nil {
		return nil, fmt.Errorf("waste factor tidak valid: %w", err)
	}
	targetMargin, err := parseNumber(field("target margin"))
	if err != nil {
		return nil, fmt.Errorf("target margin tidak valid: %w", err)
	}
	if productionCost < 0 || laborCost < 0 || overheadCost < 0 || wasteFactor < 0 || targetMargin < 0 {
		return nil, fmt.Errorf("komponen biaya tidak boleh negatif")
	}

	unitProduction := 1
	if raw := field("unit production"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("unit production tidak valid: %q", raw)
		}
		unitProduction = n
	}
	if targetMargin == 0 {
		targetMargin = 0.3
	}

	product := &model.Product{
		Name:           name,
		Description:    field("description"),
		Category:       field("category"),
		ProductionCost: productionCost,
		LaborCost:      laborCost,
		OverheadCost:   overheadCost,
		WasteFactor:    wasteFactor,
		UnitProduction: unitProduction,
		TargetMargin:   targetMargin,
		BusinessID:     businessID,
	}
	if product.Category == "" {
		product.Category = "Uncategorized"
	}
	if raw := field("current price"); raw != "" {
		price, err := parseNumber(raw)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("current price tidak valid: %q", raw)
		}
		product.CurrentPrice = &price
	}

	sku := field("sku")
	if sku == "" {
		// Baris tanpa SKU tetap bisa di-upsert: generate SKU sintetis
		// supaya import ulang tidak menduplikasi produk yang sama.
		sku = syntheticSKU(name)
	}
	product.SKU = &sku

	product.HPP = engine.ComputeHPP(engine.CostInput{
		ProductionCost: productionCost,
		LaborCost:      laborCost,
		OverheadCost:   overheadCost,
		WasteFactor:    wasteFactor,
		UnitProduction: unitProduction,
	})
	return product, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// syntheticSKU derives a stable SKU from the product name so repeated imports
// of the same SKU-less row update instead of duplicate.
func syntheticSKU(name string) string {
	slug := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return "IMP-" + slug
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
