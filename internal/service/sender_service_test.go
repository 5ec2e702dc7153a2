package service_test

import (
	"testing"

	"tailorpos/internal/service"
	"tailorpos/internal/testutil"
)

func TestSenderService_SendSMS(t *testing.T) {
	always := service.NewSenderService(1.0, false)
	result := always.SendSMS("0550000001", "hello")
	testutil.AssertEqual(t, result.Success, true)
	testutil.AssertNil(t, result.Error)

	never := service.NewSenderService(0.0, false)
	result = never.SendSMS("0550000001", "hello")
	testutil.AssertEqual(t, result.Success, false)
	testutil.AssertContains(t, result.Error.Error(), "failed to send SMS to 0550000001")
}

func TestSenderService_ClampsRate(t *testing.T) {
	testutil.AssertEqual(t, service.NewSenderService(1.5, false).GetSuccessRate(), 1.0)
	testutil.AssertEqual(t, service.NewSenderService(-0.2, false).GetSuccessRate(), 0.0)
}
