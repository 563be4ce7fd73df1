package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/schema"
)

// testSchema компактная схема в духе настоящего артефакта:
// числовые, бинарное и категориальные поля с синонимами зависимых услуг
const testSchema = `{
	"model_version": "test-1",
	"feature_columns": [
		"tenure",
		"PhoneService",
		"TotalCharges",
		"MultipleLines_Yes",
		"OnlineSecurity_Yes",
		"Contract_One year",
		"Contract_Two year"
	],
	"scale_params": [
		{"mean": 30, "scale": 10},
		{"mean": 0, "scale": 1},
		{"mean": 0, "scale": 1},
		{"mean": 0, "scale": 1},
		{"mean": 0, "scale": 1},
		{"mean": 0, "scale": 1},
		{"mean": 0, "scale": 1}
	],
	"impute_means": {"tenure": 30, "TotalCharges": 2000},
	"numeric_fields": ["tenure", "TotalCharges"],
	"binary_fields": {"PhoneService": {"Yes": 1, "No": 0}},
	"categorical_fields": {
		"MultipleLines": ["No", "Yes"],
		"OnlineSecurity": ["No", "Yes"],
		"Contract": ["Month-to-month", "One year", "Two year"]
	},
	"reference_categories": {
		"MultipleLines": "No",
		"OnlineSecurity": "No",
		"Contract": "Month-to-month"
	},
	"synonyms": {
		"MultipleLines": {"No phone service": "No"},
		"OnlineSecurity": {"No internet service": "No"}
	}
}`

func newTestEncoder(t *testing.T, policy string) *Encoder {
	t.Helper()
	store, err := schema.Parse([]byte(testSchema))
	require.NoError(t, err)
	return NewEncoder(store, policy)
}

func validRecord() models.RawRecord {
	return models.RawRecord{
		"tenure":         float64(40),
		"TotalCharges":   "1200.50",
		"PhoneService":   "Yes",
		"MultipleLines":  "Yes",
		"OnlineSecurity": "No",
		"Contract":       "Two year",
	}
}

func TestEncodeRecord_MonthToMonthScenario(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	// Клиент без телефонной услуги: зависимые поля приходят как
	// "услуга неприменима" и должны кодироваться как отказ
	vector, err := e.EncodeRecord(models.RawRecord{
		"tenure":         float64(1),
		"TotalCharges":   "29.85",
		"PhoneService":   "No",
		"MultipleLines":  "No phone service",
		"OnlineSecurity": "No internet service",
		"Contract":       "Month-to-month",
	})
	require.NoError(t, err)

	require.Len(t, vector, 7)
	assert.InDelta(t, (1.0-30.0)/10.0, vector[0], 1e-9) // tenure масштабирован
	assert.Equal(t, 0.0, vector[1])                     // PhoneService = No
	assert.InDelta(t, 29.85, vector[2], 1e-9)
	assert.Equal(t, 0.0, vector[3]) // индикаторы зависимых услуг нулевые
	assert.Equal(t, 0.0, vector[4])
	assert.Equal(t, 0.0, vector[5]) // контракт month-to-month — опорная категория
	assert.Equal(t, 0.0, vector[6])
}

func TestEncodeRecord_ColumnSetStability(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	records := []models.RawRecord{
		validRecord(),
		{
			"tenure":         "5",
			"TotalCharges":   "100",
			"PhoneService":   "No",
			"MultipleLines":  "No phone service",
			"OnlineSecurity": "Yes",
			"Contract":       "One year",
		},
		{
			"tenure":         float64(72),
			"TotalCharges":   "8000",
			"PhoneService":   "Yes",
			"MultipleLines":  "No",
			"OnlineSecurity": "No",
			"Contract":       "Month-to-month",
		},
	}

	// Длина вектора не зависит от набора категорий конкретной записи
	for i, rec := range records {
		vector, err := e.EncodeRecord(rec)
		require.NoError(t, err, "record %d", i)
		assert.Len(t, vector, 7, "record %d", i)
	}
}

func TestEncodeRecord_Idempotent(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	first, err := e.EncodeRecord(validRecord())
	require.NoError(t, err)
	second, err := e.EncodeRecord(validRecord())
	require.NoError(t, err)

	assert.Equal(t, first, second, "повторное кодирование должно давать побитово тот же вектор")
}

func TestEncodeRecord_SynonymCollapse(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	withSynonym := validRecord()
	withSynonym["MultipleLines"] = "No phone service"

	explicit := validRecord()
	explicit["MultipleLines"] = "No"

	a, err := e.EncodeRecord(withSynonym)
	require.NoError(t, err)
	b, err := e.EncodeRecord(explicit)
	require.NoError(t, err)

	assert.Equal(t, a, b, "«услуга неприменима» и явный отказ должны кодироваться одинаково")
}

func TestEncodeRecord_FrozenImputationAcrossBatches(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	malformed := validRecord()
	malformed["TotalCharges"] = " "

	// Один и тот же испорченный платеж в батчах разного состава
	batchA := e.EncodeBatch([]models.RawRecord{malformed})
	other := validRecord()
	other["TotalCharges"] = "9999"
	batchB := e.EncodeBatch([]models.RawRecord{other, malformed, other})

	require.Empty(t, batchA.Failures)
	require.Empty(t, batchB.Failures)

	// Импутируется замороженное среднее из схемы, а не среднее по батчу
	assert.Equal(t, 2000.0, batchA.Matrix[0][2])
	assert.Equal(t, 2000.0, batchB.Matrix[1][2])
	assert.Equal(t, batchA.Matrix[0], batchB.Matrix[1])
}

func TestEncodeRecord_UnparsableNumericVariants(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	for _, bad := range []string{"", "  ", "abc", "NaN", "+Inf"} {
		rec := validRecord()
		rec["TotalCharges"] = bad

		vector, err := e.EncodeRecord(rec)
		require.NoError(t, err, "value %q", bad)
		assert.Equal(t, 2000.0, vector[2], "value %q", bad)
	}
}

func TestEncodeRecord_MissingFields(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	tests := []struct {
		name  string
		field string
	}{
		{"missing numeric", "TotalCharges"},
		{"missing binary", "PhoneService"},
		{"missing categorical", "Contract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			delete(rec, tt.field)

			_, err := e.EncodeRecord(rec)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestEncodeRecord_NullFieldIsMissing(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	rec := validRecord()
	rec["Contract"] = nil

	_, err := e.EncodeRecord(rec)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Contract", missing.Field)
}

func TestEncodeRecord_UnknownFieldsIgnored(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	rec := validRecord()
	rec["customerID"] = "7590-VHVEG"
	rec["Comment"] = "vip"

	base, err := e.EncodeRecord(validRecord())
	require.NoError(t, err)
	withExtra, err := e.EncodeRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, base, withExtra)
}

func TestEncodeRecord_UnknownCategoryPolicies(t *testing.T) {
	rec := validRecord()
	rec["Contract"] = "Weekly"

	t.Run("fail closed by default", func(t *testing.T) {
		e := newTestEncoder(t, PolicyFail)

		_, err := e.EncodeRecord(rec)
		var unknown *UnknownCategoryError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Contract", unknown.Field)
		assert.Equal(t, "Weekly", unknown.Value)
	})

	t.Run("reference policy encodes as reference category", func(t *testing.T) {
		e := newTestEncoder(t, PolicyReference)

		vector, err := e.EncodeRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, 0.0, vector[5])
		assert.Equal(t, 0.0, vector[6])
	})
}

func TestEncodeRecord_BinaryThirdValueAlwaysFails(t *testing.T) {
	// Третье значение бинарного поля не должно молча стать нулем
	// даже в разрешающем режиме
	for _, policy := range []string{PolicyFail, PolicyReference} {
		e := newTestEncoder(t, policy)

		rec := validRecord()
		rec["PhoneService"] = "Maybe"

		_, err := e.EncodeRecord(rec)
		var unknown *UnknownCategoryError
		require.ErrorAs(t, err, &unknown, "policy %s", policy)
		assert.Equal(t, "PhoneService", unknown.Field)
	}
}

func TestEncodeBatch_PositionalAlignment(t *testing.T) {
	e := newTestEncoder(t, PolicyFail)

	broken := validRecord()
	delete(broken, "tenure")

	enc := e.EncodeBatch([]models.RawRecord{validRecord(), broken, validRecord()})

	require.Len(t, enc.Matrix, 2)
	assert.Equal(t, []int{0, 2}, enc.Rows)

	require.Len(t, enc.Failures, 1)
	var missing *MissingFieldError
	require.ErrorAs(t, enc.Failures[1], &missing)
	assert.Equal(t, "tenure", missing.Field)
}

func TestReasonFor(t *testing.T) {
	code, field := ReasonFor(&MissingFieldError{Field: "tenure"})
	assert.Equal(t, ReasonMissingField, code)
	assert.Equal(t, "tenure", field)

	code, field = ReasonFor(&UnknownCategoryError{Field: "Contract", Value: "Weekly"})
	assert.Equal(t, ReasonUnknownCategory, code)
	assert.Equal(t, "Contract", field)
}
