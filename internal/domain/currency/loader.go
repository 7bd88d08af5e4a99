package currency

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// CSV表头(匹配时忽略大小写与首尾空白)
const (
	HeaderCountryCode = "country code"
	HeaderSymbol      = "currency symbol"
	HeaderRate        = "rate"
)

// Delimiter 汇率CSV分隔符
const Delimiter = '|'

// ErrMissingHeader 缺少必需的表头
var ErrMissingHeader = errors.New("currency csv: missing required header")

// ParseRates 解析竖线分隔的汇率CSV
// 缺少数据或汇率无法解析的行跳过并输出警告
func ParseRates(r io.Reader, logger *slog.Logger) (map[string]Rate, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingHeader)
		}
		return nil, fmt.Errorf("read currency csv header: %w", err)
	}

	codeIdx, symbolIdx, rateIdx, err := headerIndexes(header)
	if err != nil {
		return nil, err
	}
	width := max(codeIdx, symbolIdx, rateIdx) + 1

	rates := make(map[string]Rate)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn("汇率记录读取失败", "line", line, "error", err)
			continue
		}
		if len(record) < width {
			logger.Warn("汇率记录缺少字段，已跳过", "line", line, "fields", len(record))
			continue
		}

		code := normalizeCode(record[codeIdx])
		symbol := strings.TrimSpace(record[symbolIdx])
		rawRate := strings.TrimSpace(record[rateIdx])
		if code == "" || symbol == "" || rawRate == "" {
			logger.Warn("汇率记录缺少数据，已跳过", "line", line)
			continue
		}

		rate, err := decimal.NewFromString(rawRate)
		if err != nil || !rate.IsPositive() {
			logger.Warn("汇率无法解析，已跳过", "line", line, "country", code, "rate", rawRate)
			continue
		}

		rates[code] = Rate{Symbol: symbol, Rate: rate}
	}

	if len(rates) == 0 {
		logger.Warn("汇率文件没有有效记录")
	}
	return rates, nil
}

func headerIndexes(header []string) (code, symbol, rate int, err error) {
	code, symbol, rate = -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case HeaderCountryCode:
			code = i
		case HeaderSymbol:
			symbol = i
		case HeaderRate:
			rate = i
		}
	}

	var missing []string
	if code < 0 {
		missing = append(missing, HeaderCountryCode)
	}
	if symbol < 0 {
		missing = append(missing, HeaderSymbol)
	}
	if rate < 0 {
		missing = append(missing, HeaderRate)
	}
	if len(missing) > 0 {
		return 0, 0, 0, fmt.Errorf("%w: %s", ErrMissingHeader, strings.Join(missing, ", "))
	}
	return code, symbol, rate, nil
}

// ReadTable 解析CSV并构造汇率表
func ReadTable(r io.Reader, defaults Defaults, logger *slog.Logger) (*Table, error) {
	rates, err := ParseRates(r, logger)
	if err != nil {
		return nil, err
	}
	return NewTable(rates, defaults), nil
}
