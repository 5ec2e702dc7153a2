package models_test

import (
	"encoding/json"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/testutil"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  models.Money
	}{
		{name: "whole riyals", input: "150", want: 15000},
		{name: "one fraction digit", input: "12.5", want: 1250},
		{name: "two fraction digits", input: "0.10", want: 10},
		{name: "rounds half away from zero", input: "1.005", want: 101},
		{name: "negative rounds away from zero", input: "-1.005", want: -101},
		{name: "blank is zero", input: "  ", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := models.ParseMoney(tc.input)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	_, err := models.ParseMoney("abc")
	if err == nil {
		t.Fatal("Expected error for non-numeric amount")
	}
}

func TestParseMoney_OutOfRange(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
		want    models.Money
	}{
		{name: "at the limit", input: "1000000000000", want: models.NewMoney(1000000000000, 0)},
		{name: "negative at the limit", input: "-1000000000000", want: models.NewMoney(-1000000000000, 0)},
		{name: "just above the limit", input: "1000000000000.01", wantErr: true},
		{name: "beyond int64", input: "100000000000000000000", wantErr: true},
		{name: "negative beyond int64", input: "-100000000000000000000", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := models.ParseMoney(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error but got value %s", got)
				}
				testutil.AssertContains(t, err.Error(), "exceeds the limit")
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestMoney_UnmarshalJSON_OutOfRange(t *testing.T) {
	for _, input := range []string{`"100000000000000000000"`, `100000000000000000000`} {
		var m models.Money
		if err := json.Unmarshal([]byte(input), &m); err == nil {
			t.Errorf("Expected error for %s but got value %s", input, m)
		}
	}
}

func TestMoney_String(t *testing.T) {
	testutil.AssertEqual(t, models.Money(29000).String(), "290.00")
	testutil.AssertEqual(t, models.Money(-505).String(), "-5.05")
	testutil.AssertEqual(t, models.NewMoney(12, 7).String(), "12.07")
}

func TestMoney_JSON(t *testing.T) {
	var payment models.Payment
	err := json.Unmarshal([]byte(`{"deposit":100,"discount":"30.5","extra":null,"paymentMethod":"Cash"}`), &payment)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, payment.Deposit, models.Money(10000))
	testutil.AssertEqual(t, payment.Discount, models.Money(3050))
	testutil.AssertEqual(t, payment.Extra, models.Money(0))

	out, err := json.Marshal(payment)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(out), `{"deposit":100.00,"discount":30.50,"extra":0.00,"paymentMethod":"Cash"}`)
}

func TestMoney_ChainedArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts with floats; minor units do not
	a, _ := models.ParseMoney("0.1")
	b, _ := models.ParseMoney("0.2")
	testutil.AssertEqual(t, (a + b).String(), "0.30")
	testutil.AssertEqual(t, models.Money(1999).Times(3).String(), "59.97")
}
