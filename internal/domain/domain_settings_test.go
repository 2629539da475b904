package domain

import "testing"

func TestDefaultSettings_FreshCopy(t *testing.T) {
	first := DefaultSettings()
	first[FieldCurrencyCode] = "EUR"
	first["injected"] = true

	second := DefaultSettings()
	if second[FieldCurrencyCode] != "USD" {
		t.Fatalf("defaults template was mutated: currency_code = %v", second[FieldCurrencyCode])
	}
	if _, ok := second["injected"]; ok {
		t.Fatal("defaults template was mutated: injected key present")
	}
}

func TestDefaultSettings_CompleteRuleCoverage(t *testing.T) {
	// 每个默认字段必须有校验规则，反之亦然
	for _, field := range SettingsFields() {
		if _, ok := FieldRule(field); !ok {
			t.Errorf("field %q has no coercion rule", field)
		}
	}
	for field := range settingsFieldRules {
		if !IsRecognizedField(field) {
			t.Errorf("rule table has unrecognized field %q", field)
		}
	}
}

func TestFieldRule_Kinds(t *testing.T) {
	cases := []struct {
		field string
		want  FieldKind
	}{
		{FieldDomain, KindString},
		{FieldDecimalNumber, KindNonNegativeInt},
		{FieldProductsLimit, KindPositiveInt},
		{FieldHideBillingAddress, KindBool},
	}
	for _, c := range cases {
		got, ok := FieldRule(c.field)
		if !ok {
			t.Fatalf("FieldRule(%q) not found", c.field)
		}
		if got != c.want {
			t.Errorf("FieldRule(%q) = %v, want %v", c.field, got, c.want)
		}
	}
}

func TestIsRecognizedField(t *testing.T) {
	if !IsRecognizedField(FieldLanguage) {
		t.Error("language should be recognized")
	}
	if IsRecognizedField("unrelated_field") {
		t.Error("unrelated_field should not be recognized")
	}
}
