package repository_test

import (
	"context"
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
	"tailorpos/internal/testutil"
)

func TestSettingsRepository_Defaults(t *testing.T) {
	settings, err := repository.NewSettingsRepository(testutil.NewMockStore()).Load(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *settings, models.DefaultShopSettings())
	testutil.AssertEqual(t, settings.ShopName, "Sundus")
}

func TestSettingsRepository_SaveAndLegacy(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewMockStore()
	repo := repository.NewSettingsRepository(s)

	s.Put(repository.SettingsKey, []byte(`{"shopName":"Al Noor","shopPhone":"0500000000","shopAddress":"Riyadh","vatNumber":"1"}`))
	settings, err := repo.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, settings.ShopName, "Al Noor")

	settings.ShopAddress = "Jeddah"
	testutil.AssertNoError(t, repo.Save(ctx, settings))

	reloaded, err := repo.Load(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, reloaded.ShopAddress, "Jeddah")
	testutil.AssertEqual(t, reloaded.VATNumber, "1")
}
