// Package filterexpr binds a restricted CEL filter expression onto a query params struct.
//
// Only conjunctions of simple predicates are accepted, e.g.
//
//	client == 'Bocuse' && lemma_lang in ['lat', 'fre'] && at >= timestamp('2018-01-01T00:00:00Z')
package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// Field describes which operations a filter identifier allows and, per operation,
// the name of the params struct field receiving the literal.
type Field struct {
	Kind ValueKind
	Ops  map[Op]string
}

// Schema is the whitelist of identifiers usable in a filter.
type Schema map[string]Field

var timeType = reflect.TypeOf(time.Time{})

type predicate struct {
	field string
	op    Op
	value any
}

// Bind parses filter and assigns every predicate onto the struct pointed to by dest.
// An empty filter leaves dest untouched.
func Bind(filter string, dest any, schema Schema) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(schema) == 0 {
		return errors.New("filter schema has no fields defined")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() || target.Elem().Kind() != reflect.Struct {
		return errors.New("binding must be a non-nil pointer to a struct")
	}

	preds, err := parse(filter, schema)
	if err != nil {
		return err
	}

	out := target.Elem()
	for _, pred := range preds {
		rule, ok := schema[pred.field]
		if !ok {
			return fmt.Errorf("field %q is not allowed", pred.field)
		}
		name, ok := rule.Ops[pred.op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", string(pred.op), pred.field)
		}
		if err := validateLiteral(rule.Kind, pred.op, pred.value); err != nil {
			return fmt.Errorf("field %q: %w", pred.field, err)
		}
		field := out.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("params struct %s has no settable field %q", out.Type(), name)
		}
		if err := assign(field, pred.value); err != nil {
			return fmt.Errorf("assign %q: %w", name, err)
		}
	}
	return nil
}

func parse(filter string, schema Schema) ([]predicate, error) {
	opts := make([]cel.EnvOption, 0, len(schema))
	for name, rule := range schema {
		switch rule.Kind {
		case KindString:
			opts = append(opts, cel.Variable(name, cel.StringType))
		case KindTimestamp:
			opts = append(opts, cel.Variable(name, cel.TimestampType))
		default:
			return nil, fmt.Errorf("field %q: unsupported kind %s", name, rule.Kind)
		}
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to convert AST: %w", err)
	}

	conjuncts, err := flattenAnd(parsed.GetExpr())
	if err != nil {
		return nil, err
	}
	preds := make([]predicate, 0, len(conjuncts))
	for _, expr := range conjuncts {
		p, err := parsePredicate(expr)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func flattenAnd(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}
	switch call.Function {
	case "_&&_":
		var out []*exprpb.Expr
		for _, arg := range call.Args {
			sub, err := flattenAnd(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parsePredicate(expr *exprpb.Expr) (predicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return predicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	var (
		op             Op
		ident, literal *exprpb.Expr
	)
	switch call.Function {
	case "_==_":
		op = OpEQ
	case "_>=_":
		op = OpGTE
	case "_<=_":
		op = OpLTE
	case "@in", "_in_":
		op = OpIN
	case "startsWith":
		op = OpSW
	default:
		return predicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}

	switch {
	case call.Target != nil && len(call.Args) == 1:
		ident, literal = call.Target, call.Args[0]
	case call.Target == nil && len(call.Args) == 2:
		ident, literal = call.Args[0], call.Args[1]
	default:
		return predicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}

	name := ident.GetIdentExpr().GetName()
	if name == "" {
		return predicate{}, errors.New("left-hand side must be an identifier")
	}
	value, err := parseLiteral(literal)
	if err != nil {
		return predicate{}, err
	}
	return predicate{field: name, op: op, value: value}, nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		if _, ok := constant.ConstantKind.(*exprpb.Constant_StringValue); ok {
			return constant.GetStringValue(), nil
		}
		return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
	}

	if list := expr.GetListExpr(); list != nil {
		values := make([]string, 0, len(list.GetElements()))
		for i, elem := range list.GetElements() {
			v, err := parseLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("list literal element %d: %w", i, err)
			}
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			values = append(values, s)
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if call.Target != nil || len(call.Args) != 1 || call.Args[0].GetConstExpr() == nil {
			return nil, errors.New("timestamp() expects a single string literal")
		}
		str := call.Args[0].GetConstExpr().GetStringValue()
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("timestamp literal %q is not RFC3339", str)
		}
		return t, nil
	}

	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func validateLiteral(kind ValueKind, op Op, value any) error {
	switch kind {
	case KindString:
		if op == OpIN {
			list, ok := value.([]string)
			if !ok || len(list) == 0 {
				return errors.New("expected non-empty list of string literals")
			}
			return nil
		}
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}

// assign writes value into field. A single string assigned to a []string field is appended,
// so `x == 'a'` and `x in ['a']` can share one destination.
func assign(field reflect.Value, value any) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assign(field.Elem(), value)
	}

	switch v := value.(type) {
	case string:
		switch {
		case field.Kind() == reflect.String:
			field.SetString(v)
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
			field.Set(reflect.Append(field, reflect.ValueOf(v)))
		default:
			return fmt.Errorf("expected string destination, got %s", field.Kind())
		}
	case []string:
		if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("expected []string destination, got %s", field.Type())
		}
		field.Set(reflect.AppendSlice(field, reflect.ValueOf(append([]string(nil), v...))))
	case time.Time:
		if field.Type() != timeType {
			return fmt.Errorf("expected time.Time destination, got %s", field.Type())
		}
		field.Set(reflect.ValueOf(v))
	default:
		return fmt.Errorf("unsupported literal type %T", value)
	}
	return nil
}
