package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/config"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/spf13/pflag"
)

// orderValue binds --order to a layout's OrderBy.
type orderValue struct{ dst *domain.OrderBy }

var _ pflag.Value = orderValue{}

func (v orderValue) String() string {
	if v.dst == nil {
		return ""
	}
	return string(*v.dst)
}

func (v orderValue) Set(s string) error {
	order, ok := config.ParseOrderBy(s)
	if !ok {
		return fmt.Errorf("invalid order %q (want orderbytime or orderbycourse)", s)
	}
	*v.dst = order
	return nil
}

func (orderValue) Type() string { return "order" }

// modeValue binds --mode to a layout's long-bar mode.
type modeValue struct{ dst *domain.BarMode }

var _ pflag.Value = modeValue{}

func (v modeValue) String() string {
	if v.dst == nil {
		return ""
	}
	return string(*v.dst)
}

func (v modeValue) Set(s string) error {
	mode, ok := config.ParseBarMode(s)
	if !ok {
		return fmt.Errorf("invalid mode %q (want squeeze, scroll or wrap)", s)
	}
	*v.dst = mode
	return nil
}

func (modeValue) Type() string { return "mode" }

// timeValue parses --at as RFC 3339 or a plain date (midnight UTC).
type timeValue struct{ dst **time.Time }

var _ pflag.Value = timeValue{}

func (v timeValue) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return (*v.dst).Format(time.RFC3339)
}

func (v timeValue) Set(s string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			*v.dst = &t
			return nil
		}
	}
	return fmt.Errorf("invalid time %q (want RFC 3339 or YYYY-MM-DD)", s)
}

func (timeValue) Type() string { return "time" }
