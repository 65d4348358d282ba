package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// inspectLimit caps how many values Inspect prints.
const inspectLimit = 8

// EvaluatorResponse is the outcome of one Eval call.
type EvaluatorResponse interface {
	// Values returns one result per evaluated row, in request order.
	Values() []float64

	// Rows returns the evaluated row indices, or nil when every row of the
	// binding was evaluated in row order.
	Rows() []int

	// Inspect returns a short string representation of the values.
	Inspect() string

	// Interface returns the values as a native Go value ([]float64).
	Interface() any

	// GetScriptExeID returns the ID of the executable unit that produced the values.
	GetScriptExeID() string

	// GetExecTime returns the time it took to evaluate the program.
	GetExecTime() string
}

// Result is the EvaluatorResponse returned by the engines.
type Result struct {
	values      []float64
	rows        []int
	execTime    time.Duration
	scriptExeID string
}

// NewResult wraps the values computed for rows.
func NewResult(values []float64, rows []int, execTime time.Duration, exeID string) *Result {
	return &Result{
		values:      values,
		rows:        rows,
		execTime:    execTime,
		scriptExeID: exeID,
	}
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"Result{Values: %s, ExecTime: %s, ScriptExeID: %s}",
		r.Inspect(), r.GetExecTime(), r.GetScriptExeID())
}

func (r *Result) Values() []float64 {
	return r.values
}

func (r *Result) Rows() []int {
	return r.rows
}

// Scalar returns the single value of a one-row result.
func (r *Result) Scalar() (float64, bool) {
	if len(r.values) != 1 {
		return 0, false
	}
	return r.values[0], true
}

func (r *Result) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range r.values {
		if i == inspectLimit {
			fmt.Fprintf(&sb, " ... %s values", humanize.Comma(int64(len(r.values))))
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (r *Result) Interface() any {
	return r.values
}

func (r *Result) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *Result) GetExecTime() string {
	return r.execTime.String()
}
