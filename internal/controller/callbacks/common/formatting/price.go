package formatting

import (
	"fmt"
	"strings"
)

// FormatPrice форматирует цену в долларах, без хвостовых нулей
func FormatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return "$" + s
}
