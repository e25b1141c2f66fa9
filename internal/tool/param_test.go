package tool

import (
	"errors"
	"testing"
	"time"
)

func validParam() *Param {
	return &Param{
		Meta:               Meta{Name: "google_docs_read"},
		ServiceAccountJSON: `{"type": "service_account", "project_id": "p"}`,
		MaxRetries:         DefaultMaxRetries,
		DelayAfterError:    DefaultDelayAfterError,
	}
}

func TestParamCheck_Valid(t *testing.T) {
	if err := validParam().Check(); err != nil {
		t.Errorf("expected valid param, got %v", err)
	}
}

func TestParamCheck_EmptyCredential(t *testing.T) {
	for _, blob := range []string{"", "   ", "\n\t"} {
		p := validParam()
		p.ServiceAccountJSON = blob

		err := p.Check()
		if err == nil {
			t.Fatalf("expected error for credential %q", blob)
		}

		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("expected *ConfigError, got %T", err)
		}
		if configErr.Field != "Service Account JSON" {
			t.Errorf("unexpected field: %q", configErr.Field)
		}
	}
}

func TestParamCheck_NegativePolicy(t *testing.T) {
	p := validParam()
	p.MaxRetries = -1
	if err := p.Check(); err == nil {
		t.Error("expected error for negative max retries")
	}

	p = validParam()
	p.DelayAfterError = -time.Second
	if err := p.Check(); err == nil {
		t.Error("expected error for negative delay")
	}
}

func TestParamCheck_Deterministic(t *testing.T) {
	// Validation outcome must not depend on retry policy values
	p := validParam()
	p.ServiceAccountJSON = ""
	first := p.Check()

	p.MaxRetries = 99
	p.DelayAfterError = time.Hour
	second := p.Check()

	if (first == nil) != (second == nil) {
		t.Error("validation result changed with retry policy")
	}
}
