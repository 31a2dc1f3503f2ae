package credentials

import (
	"encoding/json"
	"testing"

	"pocketledger/internal/cipher"
	"pocketledger/internal/storage"
	"pocketledger/internal/testutil"
)

func newTestStore(t *testing.T) (*Store, storage.Store) {
	t.Helper()

	slots := storage.NewMemStore()
	return NewStore(slots, cipher.Default()), slots
}

func TestCreateIdentity(t *testing.T) {
	t.Run("allocates_user_id", func(t *testing.T) {
		store, _ := newTestStore(t)

		userID, err := store.CreateIdentity("a@b.com")
		testutil.AssertNoError(t, err)
		if userID == "" {
			t.Fatal("expected non-empty user id")
		}

		exists, err := store.IdentifierExists("a@b.com")
		testutil.AssertNoError(t, err)
		if !exists {
			t.Error("expected identifier to be mapped after CreateIdentity")
		}
	})

	t.Run("duplicate_identifier", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.CreateIdentity("a@b.com")
		testutil.AssertNoError(t, err)

		_, err = store.CreateIdentity("a@b.com")
		testutil.AssertAppError(t, err, "IDENTIFIER_TAKEN")
	})

	t.Run("empty_identifier", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.CreateIdentity("")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBindIdentifiers(t *testing.T) {
	t.Run("binds_new_identifiers", func(t *testing.T) {
		store, _ := newTestStore(t)

		userID, err := store.CreateIdentity("a@b.com")
		testutil.AssertNoError(t, err)

		err = store.BindIdentifiers(userID, []string{"555-0134", "a@b.com"})
		testutil.AssertNoError(t, err)

		exists, err := store.IdentifierExists("555-0134")
		testutil.AssertNoError(t, err)
		if !exists {
			t.Error("expected phone identifier to be bound")
		}
	})

	t.Run("never_steals_foreign_identifier", func(t *testing.T) {
		store, _ := newTestStore(t)

		firstID, err := store.CreateIdentity("first@b.com")
		testutil.AssertNoError(t, err)
		secondID, err := store.CreateIdentity("second@b.com")
		testutil.AssertNoError(t, err)

		err = store.BindIdentifiers(secondID, []string{"first@b.com"})
		testutil.AssertNoError(t, err)

		profile := testutil.NewTestProfile(t)
		profile.ID = firstID
		testutil.AssertNoError(t, store.SaveProfile(profile))

		found, err := store.FindByIdentifier("first@b.com")
		testutil.AssertNoError(t, err)
		if found.ID != firstID {
			t.Errorf("expected identifier to stay bound to %s, got %s", firstID, found.ID)
		}
	})
}

func TestSaveLoadProfile(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		store, _ := newTestStore(t)
		profile := testutil.NewTestProfile(t)

		testutil.AssertNoError(t, store.SaveProfile(profile))

		loaded, err := store.LoadProfile(profile.ID)
		testutil.AssertNoError(t, err)
		if loaded.Name != profile.Name || loaded.Password != profile.Password {
			t.Errorf("expected %+v, got %+v", profile, loaded)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.LoadProfile("no-such-id")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("profiles_slot_is_encoded", func(t *testing.T) {
		store, slots := newTestStore(t)
		profile := testutil.NewTestProfile(t)

		testutil.AssertNoError(t, store.SaveProfile(profile))

		raw, ok, err := slots.Get(storage.KeyProfiles)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected profiles slot to be written")
		}
		if json.Valid([]byte(raw)) {
			t.Error("expected profiles slot content to be encoded, found plain JSON")
		}
	})

	t.Run("nil_profile", func(t *testing.T) {
		store, _ := newTestStore(t)
		testutil.AssertAppError(t, store.SaveProfile(nil), "INVALID_INPUT")
	})
}

func TestVerifyPassword(t *testing.T) {
	setup := func(t *testing.T) *Store {
		store, _ := newTestStore(t)
		userID, err := store.CreateIdentity("a@b.com")
		testutil.AssertNoError(t, err)

		profile := testutil.NewTestProfile(t)
		profile.ID = userID
		profile.Email = "a@b.com"
		testutil.AssertNoError(t, store.SaveProfile(profile))
		return store
	}

	t.Run("correct_password", func(t *testing.T) {
		store := setup(t)

		profile, err := store.VerifyPassword("a@b.com", testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if profile.Email != "a@b.com" {
			t.Errorf("expected a@b.com, got %s", profile.Email)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		store := setup(t)

		_, err := store.VerifyPassword("a@b.com", "WrongPass1!")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_identifier", func(t *testing.T) {
		store := setup(t)

		_, err := store.VerifyPassword("nobody@b.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestResetPassword(t *testing.T) {
	store, _ := newTestStore(t)
	userID, err := store.CreateIdentity("a@b.com")
	testutil.AssertNoError(t, err)

	profile := testutil.NewTestProfile(t)
	profile.ID = userID
	profile.Email = "a@b.com"
	testutil.AssertNoError(t, store.SaveProfile(profile))

	testutil.AssertNoError(t, store.ResetPassword("a@b.com", "NewPassw0rd!"))

	_, err = store.VerifyPassword("a@b.com", testutil.TestPassword)
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	_, err = store.VerifyPassword("a@b.com", "NewPassw0rd!")
	testutil.AssertNoError(t, err)
}
