package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toyz/wired/pkg/wired"
)

func quote(s string) string {
	return strconv.Quote(s)
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}

// ArgExpr renders a setup argument as a Go expression building it
func ArgExpr(arg wired.Arg) string {
	switch arg.Kind {
	case wired.RefArg:
		return fmt.Sprintf("wired.Ref(%s)", strconv.Quote(arg.Name))
	case wired.ContainerRefArg:
		return "wired.ContainerArg()"
	case wired.ParamArg:
		return fmt.Sprintf("wired.Param(%s)", strconv.Quote(arg.Name))
	}
	return fmt.Sprintf("wired.Value(%s)", literal(arg.Value))
}

func literal(v any) string {
	switch value := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(value)
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case float64:
		s := strconv.FormatFloat(value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
	return strconv.Quote(fmt.Sprint(v))
}
