package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

const DefaultDataFile = "inventory.json"

const inventorySchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"propertyNames": {"minLength": 1},
	"additionalProperties": {"type": "integer"}
}`

var inventorySchema = mustCompileSchema(inventorySchemaJSON)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile inventory schema: %v", err))
	}
	return schema
}

// JSONFileAdapter keeps the inventory as a single pretty-printed JSON object.
type JSONFileAdapter struct {
	path   string
	logger *zap.Logger
}

func NewJSONFileAdapter(path string, logger *zap.Logger) *JSONFileAdapter {
	if path == "" {
		path = DefaultDataFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONFileAdapter{path: path, logger: logger}
}

func (a *JSONFileAdapter) Path() string {
	return a.path
}

func (a *JSONFileAdapter) Load(ctx context.Context) (map[string]int, error) {
	raw, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Info("inventory file not found, starting with empty inventory", zap.String("path", a.path))
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.path, err)
	}

	stock, err := DecodeInventory(raw)
	if err != nil {
		a.logger.Error("failed to decode inventory file", zap.String("path", a.path), zap.Error(err))
		return nil, err
	}

	a.logger.Info("loaded inventory file", zap.String("path", a.path), zap.Int("items", len(stock)))
	return stock, nil
}

func (a *JSONFileAdapter) Save(ctx context.Context, stock map[string]int) error {
	data, err := EncodeInventory(stock)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	if err := writeFile(a.path, data); err != nil {
		a.logger.Error("failed to save inventory file", zap.String("path", a.path), zap.Error(err))
		return err
	}

	a.logger.Info("saved inventory file", zap.String("path", a.path), zap.Int("items", len(stock)))
	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DecodeInventory parses a JSON object of item name to integer quantity.
// Anything else, including floats and booleans, is an ErrFormat.
func DecodeInventory(raw []byte) (map[string]int, error) {
	// encoding/json would silently turn bad bytes into U+FFFD.
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8", domain.ErrFormat)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrFormat)
	}

	result, err := inventorySchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrFormat, result.Errors()[0])
	}

	// The schema accepts 1.0 as an integer; decode the numbers ourselves.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]json.Number
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	stock := make(map[string]int, len(doc))
	for item, num := range doc {
		qty, err := strconv.Atoi(num.String())
		if err != nil {
			return nil, fmt.Errorf("%w: quantity of %q is not an integer: %s", domain.ErrFormat, item, num)
		}
		stock[item] = qty
	}
	return stock, nil
}

// EncodeInventory renders stock as a 2-space indented JSON object with
// sorted keys and a trailing newline. Non-ASCII names are kept verbatim.
func EncodeInventory(stock map[string]int) ([]byte, error) {
	if stock == nil {
		stock = map[string]int{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stock); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
