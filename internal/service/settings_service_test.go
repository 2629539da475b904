package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/dto"
	"github.com/kiyensi/store-settings-service/pkg/convert"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type mockSettingsRepo struct {
	domain.SettingsRepository
	fields  map[string]any
	hasDoc  bool
	creates int
	upserts int
}

func (m *mockSettingsRepo) Get(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any, len(m.fields))
	for k, v := range m.fields {
		out[k] = v
	}
	return out, nil
}

func (m *mockSettingsRepo) Count(ctx context.Context) (int64, error) {
	if m.hasDoc {
		return 1, nil
	}
	return 0, nil
}

func (m *mockSettingsRepo) Create(ctx context.Context, fields map[string]any) error {
	m.creates++
	if m.hasDoc {
		return errors.New("record already exists")
	}
	m.fields = make(map[string]any, len(fields))
	for k, v := range fields {
		m.fields[k] = v
	}
	m.hasDoc = true
	return nil
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, patch map[string]any) error {
	m.upserts++
	if m.fields == nil {
		m.fields = make(map[string]any)
	}
	for k, v := range patch {
		m.fields[k] = v
	}
	m.hasDoc = true
	return nil
}

func newTestSettingsService(repo domain.SettingsRepository) SettingsService {
	return NewSettingsService(repo, &ServiceConfig{
		App: AppServiceConfig{UploadUrlPath: "content/uploads"},
	})
}

func viewToMap(t *testing.T, view *dto.SettingsDTO) map[string]any {
	t.Helper()
	m := make(map[string]any)
	if err := convert.StructToMap(view, m); err != nil {
		t.Fatalf("StructToMap failed: %v", err)
	}
	return m
}

func TestBuildPatch(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    map[string]any
		wantErr string
	}{
		{
			name:    "empty input rejected",
			input:   map[string]any{},
			wantErr: "empty input",
		},
		{
			name:  "negative decimal number falls back to zero",
			input: map[string]any{"decimal_number": -5},
			want:  map[string]any{"decimal_number": 0},
		},
		{
			name:  "numeric string decimal number parsed",
			input: map[string]any{"decimal_number": "3"},
			want:  map[string]any{"decimal_number": 3},
		},
		{
			name:  "bool parse failure takes default",
			input: map[string]any{"hide_billing_address": "not-a-bool"},
			want:  map[string]any{"hide_billing_address": false},
		},
		{
			name:  "bool value kept",
			input: map[string]any{"hide_billing_address": true},
			want:  map[string]any{"hide_billing_address": true},
		},
		{
			name:  "products limit parse failure stored as sentinel",
			input: map[string]any{"products_limit": "abc"},
			want:  map[string]any{"products_limit": 0},
		},
		{
			name:  "products limit zero stored as sentinel",
			input: map[string]any{"products_limit": 0},
			want:  map[string]any{"products_limit": 0},
		},
		{
			name:  "unrecognized keys dropped",
			input: map[string]any{"unrelated_field": "x"},
			want:  map[string]any{},
		},
		{
			name:  "non-string value for string field becomes empty",
			input: map[string]any{"currency_code": 42},
			want:  map[string]any{"currency_code": ""},
		},
		{
			name:  "null string field becomes empty",
			input: map[string]any{"logo_file": nil},
			want:  map[string]any{"logo_file": ""},
		},
		{
			name: "mixed patch keeps only recognized fields",
			input: map[string]any{
				"currency_code":  "EUR",
				"unrelated":      1,
				"decimal_number": 2.0,
			},
			want: map[string]any{
				"currency_code":  "EUR",
				"decimal_number": 2,
			},
		},
	}

	svc := &settingsService{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.buildPatch(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got none", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error mismatch: got %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPatch failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("patch mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdate_SeedsDefaultsThenApplies(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc := newTestSettingsService(repo)

	view, err := svc.Update(ctx, map[string]any{"currency_code": "EUR"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if repo.creates != 1 {
		t.Errorf("expected one seeding create, got %d", repo.creates)
	}
	if repo.fields["language"] != "en" {
		t.Errorf("seeded language mismatch: got %v", repo.fields["language"])
	}
	if repo.fields["currency_code"] != "EUR" {
		t.Errorf("currency_code not applied: got %v", repo.fields["currency_code"])
	}
	if view.CurrencyCode != "EUR" {
		t.Errorf("view currency_code mismatch: got %q", view.CurrencyCode)
	}
	if view.Language != "en" {
		t.Errorf("view language mismatch: got %q", view.Language)
	}

	// 第二次更新合并到已有记录，之前的变更保留
	view, err = svc.Update(ctx, map[string]any{"language": "de"})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if repo.creates != 1 {
		t.Errorf("expected no second seeding create, got %d", repo.creates)
	}
	if view.CurrencyCode != "EUR" {
		t.Errorf("earlier change lost after merge: got %q", view.CurrencyCode)
	}
	if view.Language != "de" {
		t.Errorf("view language mismatch: got %q", view.Language)
	}
}

func TestUpdate_EmptyInputLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc := newTestSettingsService(repo)

	_, err := svc.Update(ctx, map[string]any{})
	if err == nil || err.Error() != "empty input" {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if repo.creates != 0 || repo.upserts != 0 {
		t.Errorf("store touched on invalid input: creates=%d upserts=%d", repo.creates, repo.upserts)
	}
}

func TestUpdate_UnrecognizedOnlyInput(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{}
	svc := newTestSettingsService(repo)

	view, err := svc.Update(ctx, map[string]any{"unrelated": "x"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.upserts != 1 {
		t.Errorf("expected upsert with empty patch, got %d", repo.upserts)
	}
	if view.CurrencyCode != "USD" {
		t.Errorf("view should stay at defaults: got %q", view.CurrencyCode)
	}
	if _, ok := repo.fields["unrelated"]; ok {
		t.Error("unrecognized key leaked into storage")
	}
}

func TestUpdate_LogoFileNullClearsToEmpty(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{
		hasDoc: true,
		fields: map[string]any{"logo_file": "shop.png"},
	}
	svc := newTestSettingsService(repo)

	view, err := svc.Update(ctx, map[string]any{"logo_file": nil})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if repo.fields["logo_file"] != "" {
		t.Errorf("logo_file not cleared: got %v", repo.fields["logo_file"])
	}
	if view.Logo != nil {
		t.Errorf("logo should be null after clearing, got %v", *view.Logo)
	}
}

func TestGetView_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestSettingsService(&mockSettingsRepo{})

	view, err := svc.GetView(ctx)
	if err != nil {
		t.Fatalf("GetView failed: %v", err)
	}

	if view.Language != "en" {
		t.Errorf("language: got %q, want en", view.Language)
	}
	if view.CurrencyCode != "USD" || view.CurrencySymbol != "$" {
		t.Errorf("currency defaults mismatch: %q %q", view.CurrencyCode, view.CurrencySymbol)
	}
	if view.DecimalNumber != 2 {
		t.Errorf("decimal_number: got %d, want 2", view.DecimalNumber)
	}
	if view.ProductsLimit != 30 {
		t.Errorf("products_limit: got %d, want 30", view.ProductsLimit)
	}
	if view.Timezone != "Asia/Singapore" {
		t.Errorf("timezone: got %q", view.Timezone)
	}
	if view.HideBillingAddress {
		t.Error("hide_billing_address should default to false")
	}
	if view.Domain != "" || view.LogoFile != "" {
		t.Errorf("identity fields should default empty: %q %q", view.Domain, view.LogoFile)
	}
	if view.Logo != nil {
		t.Errorf("logo should be null without a logo file, got %v", *view.Logo)
	}
}

func TestGetView_LogoResolution(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string // 空串表示期望 logo 为 null
	}{
		{
			name:   "absolute domain",
			fields: map[string]any{"domain": "https://shop.example.com", "logo_file": "logo.png"},
			want:   "https://shop.example.com/content/uploads/logo.png",
		},
		{
			name:   "domain with trailing slash",
			fields: map[string]any{"domain": "https://shop.example.com/", "logo_file": "logo.png"},
			want:   "https://shop.example.com/content/uploads/logo.png",
		},
		{
			name:   "empty domain yields root relative url",
			fields: map[string]any{"logo_file": "logo.png"},
			want:   "/content/uploads/logo.png",
		},
		{
			name:   "empty logo file yields null",
			fields: map[string]any{"domain": "https://shop.example.com"},
			want:   "",
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSettingsRepo{hasDoc: true, fields: tt.fields}
			svc := newTestSettingsService(repo)

			view, err := svc.GetView(ctx)
			if err != nil {
				t.Fatalf("GetView failed: %v", err)
			}
			if tt.want == "" {
				if view.Logo != nil {
					t.Errorf("expected null logo, got %q", *view.Logo)
				}
				return
			}
			if view.Logo == nil {
				t.Fatal("expected resolved logo url, got null")
			}
			if *view.Logo != tt.want {
				t.Errorf("logo url mismatch: got %q, want %q", *view.Logo, tt.want)
			}
		})
	}
}

func TestGetView_IgnoresUnrecognizedPersistedKeys(t *testing.T) {
	ctx := context.Background()
	repo := &mockSettingsRepo{
		hasDoc: true,
		fields: map[string]any{
			"_id":        float64(7),
			"legacy_key": "x",
			"language":   "fr",
		},
	}
	svc := newTestSettingsService(repo)

	view, err := svc.GetView(ctx)
	if err != nil {
		t.Fatalf("GetView failed: %v", err)
	}
	if view.Language != "fr" {
		t.Errorf("language: got %q, want fr", view.Language)
	}

	m := viewToMap(t, view)
	if _, ok := m["_id"]; ok {
		t.Error("storage identity key leaked into view")
	}
	if _, ok := m["legacy_key"]; ok {
		t.Error("unrecognized persisted key leaked into view")
	}
	// 识别字段全集加派生的 logo
	if len(m) != len(domain.SettingsFields())+1 {
		t.Errorf("view key count mismatch: got %d, want %d", len(m), len(domain.SettingsFields())+1)
	}
}

// 任意持久化子集下，视图都携带全部识别字段：
// 持久化的字段取持久化值，其余字段取默认值
func TestProperty_ViewCompleteness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	fields := domain.SettingsFields()
	fieldVals := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		fieldVals = append(fieldVals, f)
	}

	markerFor := func(field string) any {
		kind, _ := domain.FieldRule(field)
		switch kind {
		case domain.KindNonNegativeInt:
			return 7
		case domain.KindPositiveInt:
			return 9
		case domain.KindBool:
			return true
		default:
			return "pv"
		}
	}
	defaults := domain.DefaultSettings()

	properties.Property("view always carries every recognized field", prop.ForAll(
		func(subset []string) bool {
			persisted := make(map[string]any, len(subset))
			for _, f := range subset {
				persisted[f] = markerFor(f)
			}
			repo := &mockSettingsRepo{hasDoc: true, fields: persisted}
			svc := newTestSettingsService(repo)

			view, err := svc.GetView(context.Background())
			if err != nil {
				t.Logf("GetView failed: %v", err)
				return false
			}
			m := viewToMap(t, view)

			if len(m) != len(fields)+1 {
				t.Logf("key count mismatch: got %d", len(m))
				return false
			}
			for _, f := range fields {
				got, ok := m[f]
				if !ok {
					t.Logf("missing field %q", f)
					return false
				}
				want := defaults[f]
				if _, picked := persisted[f]; picked {
					want = markerFor(f)
				}
				if fmt.Sprint(got) != fmt.Sprint(want) {
					t.Logf("field %q mismatch: got %v, want %v", f, got, want)
					return false
				}
			}

			_, logoSet := persisted["logo_file"]
			if logoSet != (m["logo"] != nil) {
				t.Logf("logo derivation mismatch: persisted=%v logo=%v", logoSet, m["logo"])
				return false
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf(fieldVals...)),
	))

	properties.TestingRun(t)
}
