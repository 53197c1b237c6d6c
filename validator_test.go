package metrics

import (
	"errors"
	"testing"
)

func TestValidateMetricNameSuccess(t *testing.T) {
	f := func(s string) {
		t.Helper()
		if err := validateMetricName(s); err != nil {
			t.Fatalf("cannot validate %q: %s", s, err)
		}
	}
	f("a")
	f("_9:8")
	f("foo_bar_total")
	f(":foo:bar")
	f("A9")
}

func TestValidateMetricNameError(t *testing.T) {
	f := func(s string) {
		t.Helper()
		err := validateMetricName(s)
		if err == nil {
			t.Fatalf("expecting non-nil error when validating %q", s)
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("error for %q must wrap ErrConfiguration; got %s", s, err)
		}
	}
	f("")
	f("9foo")
	f("foo-bar")
	f("foo bar")
	f("foo{}")
	f(" foo")
	f("foo ")
}

func TestValidateLabelNameSuccess(t *testing.T) {
	f := func(s string) {
		t.Helper()
		if err := validateLabelName(s); err != nil {
			t.Fatalf("cannot validate %q: %s", s, err)
		}
	}
	f("a")
	f("_a")
	f("method")
	f("grpc_code9")
}

func TestValidateLabelNameError(t *testing.T) {
	f := func(s string) {
		t.Helper()
		err := validateLabelName(s)
		if err == nil {
			t.Fatalf("expecting non-nil error when validating %q", s)
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("error for %q must wrap ErrConfiguration; got %s", s, err)
		}
	}
	f("")
	f("__reserved")
	f("9foo")
	f("foo-bar")
	f("foo:bar")
}

func TestValidateSchema(t *testing.T) {
	if err := validateSchema("foo_total", []string{"method", "uri"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := validateSchema("foo_total", []string{"__name"}); err == nil {
		t.Fatalf("expecting non-nil error for reserved label name")
	}
	if err := validateSchema("", []string{"method"}); err == nil {
		t.Fatalf("expecting non-nil error for empty metric name")
	}
}
