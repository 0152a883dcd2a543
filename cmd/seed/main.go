// seed genera un script SQL con el inventario inicial de insumos a partir de un CSV
// exportado desde planilla (separador ';', codificación ISO-8859-1 por defecto).
//
// Columnas: nombre;unidad;cantidad_maxima;cantidad_comprada;precio_compra
// La primera fila es encabezado. Las cantidades se normalizan a la unidad base (kg -> g, l -> ml).
//
// Uso: go run ./cmd/seed [-encoding latin1|utf8] [-out ruta.sql] insumos.csv
// Escribe por defecto: internal/infrastructure/postgres/migrations/002_seed_ingredients.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// Los IDs se derivan del nombre para que el script sea idempotente.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("pdv-api/seed"))

type seedRow struct {
	ingredient *entity.Ingredient
	batch      *entity.PurchaseBatch
}

func main() {
	encoding := flag.String("encoding", "latin1", "codificación del CSV: latin1 o utf8")
	outFlag := flag.String("out", "", "ruta del script SQL de salida")
	flag.Parse()

	csvPath := "insumos.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.EqualFold(*encoding, "latin1") || strings.EqualFold(*encoding, "ISO-8859-1") {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	rows, err := parseIngredients(in, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_ingredients.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d insumos\n", outPath, len(rows))
}

// parseIngredients lee el CSV y arma cada insumo con su compra inicial (si la hay).
func parseIngredients(r io.Reader, now time.Time) ([]seedRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}

	seen := make(map[string]int)
	out := make([]seedRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("línea %d: %q repetido (línea %d)", line, name, prev)
		}
		seen[key] = line

		unit, ok := entity.ParseUnit(rec[1])
		if !ok {
			return nil, fmt.Errorf("línea %d: unidad %q desconocida", line, rec[1])
		}
		maxQty, err := parseNumber(rec[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: cantidad máxima: %w", line, err)
		}
		qty, err := parseNumber(rec[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: cantidad comprada: %w", line, err)
		}
		price, err := parseNumber(rec[4])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio: %w", line, err)
		}

		ing := &entity.Ingredient{
			ID:          uuid.NewSHA1(seedNamespace, []byte("ingredient:"+key)).String(),
			Name:        name,
			Unit:        unit.Base(),
			MaxQuantity: unit.NormalizeQuantity(maxQty),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		row := seedRow{ingredient: ing}
		if qty.IsPositive() {
			batchID := uuid.NewSHA1(seedNamespace, []byte("batch:"+key)).String()
			batch, ok := ing.AddPurchase(batchID, now, price, unit.NormalizeQuantity(qty))
			if !ok {
				return nil, fmt.Errorf("línea %d: compra inválida", line)
			}
			row.batch = &batch
		}
		out = append(out, row)
	}
	return out, nil
}

// parseNumber acepta coma decimal de planilla ("1,5") y vacío como cero.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %s", s)
	}
	return d, nil
}

func writeSQL(w io.Writer, rows []seedRow) error {
	var b strings.Builder
	b.WriteString("-- Inventario inicial de insumos (cantidades en unidad base)\n")
	b.WriteString("-- Generado por cmd/seed\n\n")
	for _, r := range rows {
		ing := r.ingredient
		fmt.Fprintf(&b, "INSERT INTO ingredients (id, name, unit, max_quantity) VALUES ('%s', '%s', '%s', %s)\n",
			ing.ID, escapeSQL(ing.Name), ing.Unit, ing.MaxQuantity.String())
		b.WriteString("ON CONFLICT DO NOTHING;\n")
		if r.batch != nil {
			bt := r.batch
			b.WriteString("INSERT INTO purchase_batches (id, ingredient_id, purchase_date, buy_price, original_quantity, current_quantity, unit_price)\n")
			fmt.Fprintf(&b, "SELECT '%s', id, now(), %s, %s, %s, %s FROM ingredients WHERE id = '%s'\n",
				bt.ID, bt.BuyPrice.String(), bt.OriginalQuantity.String(), bt.CurrentQuantity.String(),
				bt.UnitPrice.String(), ing.ID)
			b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
