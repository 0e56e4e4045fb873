// Package money форматирует денежные суммы по правилам локали и валюты.
package money

import (
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale — локаль по умолчанию для витрины.
const DefaultLocale = "en-US"

// symbols — узкие символы валют в том виде, в каком их показывает en-US.
// Для валют вне таблицы используется ISO-код.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"ILS": "₪",
	"VND": "₫",
	"CNY": "CN¥",
	"CAD": "CA$",
	"AUD": "A$",
}

// suffixLanguages — языки, в которых символ валюты ставится после суммы
// через неразрывный пробел: "1.234,50 €". x/text не отдаёт шаблоны валют CLDR,
// поэтому размещение задано здесь; разделители берутся из данных x/text.
var suffixLanguages = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true, "es": true,
	"et": true, "fi": true, "fr": true, "hr": true, "hu": true, "it": true,
	"lt": true, "lv": true, "nb": true, "pl": true, "ro": true, "ru": true,
	"sk": true, "sl": true, "sv": true, "uk": true,
}

const nbsp = "\u00a0"

// Formatter форматирует суммы для одной локали.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	group   string // разделитель групп разрядов
	decimal string // десятичный разделитель
	suffix  bool   // символ валюты после суммы
}

// NewFormatter создаёт форматтер для BCP-47 локали. Пустая строка означает en-US.
func NewFormatter(locale string) (*Formatter, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, e.Wrap("money.NewFormatter", err)
	}

	printer := message.NewPrinter(tag)
	group, dec := separators(printer)
	base, _ := tag.Base()

	return &Formatter{
		tag:     tag,
		printer: printer,
		group:   group,
		decimal: dec,
		suffix:  suffixLanguages[base.String()],
	}, nil
}

// MustFormatter — вариант NewFormatter для заведомо корректных локалей.
func MustFormatter(locale string) *Formatter {
	f, err := NewFormatter(locale)
	if err != nil {
		panic(err)
	}

	return f
}

// Locale возвращает тег локали форматтера.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format округляет сумму до минорной единицы валюты и форматирует её: (20, "USD") -> "$20.00".
// Цифры берутся из десятичной записи суммы без перехода через float64.
func (f *Formatter) Format(amount decimal.Decimal, code string) (string, error) {
	const op = "money.Formatter.Format"

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", e.Wrap(op, e.ErrInvalidCurrency)
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	digits := f.digits(rounded.StringFixed(int32(scale)))
	iso := unit.String()
	sym, known := symbols[iso]
	if !known {
		sym = iso
	}

	switch {
	case f.suffix:
		return sign + digits + nbsp + sym, nil
	case known:
		return sign + sym + digits, nil
	default:
		return sign + sym + " " + digits, nil
	}
}

// digits расставляет разделители локали в записи вида "1234.50".
func (f *Formatter) digits(fixed string) string {
	intPart, frac, hasFrac := strings.Cut(fixed, ".")

	out := groupDigits(intPart, f.group)
	if hasFrac {
		out += f.decimal + frac
	}

	return out
}

func groupDigits(intPart, sep string) string {
	if len(intPart) <= 3 || sep == "" {
		return intPart
	}

	var b strings.Builder
	head := len(intPart) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(intPart[:head])
	for i := head; i < len(intPart); i += 3 {
		b.WriteString(sep)
		b.WriteString(intPart[i : i+3])
	}

	return b.String()
}

// separators извлекает разделители из образца, отформатированного принтером локали.
// Локали с нелатинскими цифрами получают разделители en-US.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.Scale(1)))

	i := strings.Index(sample, "234")
	j := strings.Index(sample, "567")
	if !strings.HasPrefix(sample, "1") || !strings.HasSuffix(sample, "5") || i < 1 || j < i+3 {
		return ",", "."
	}

	return sample[1:i], sample[j+3 : len(sample)-1]
}
