package sigs

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestUserDataValidate(t *testing.T) {
	pub := custodytest.NewKey().PublicKey()

	cases := map[string]struct {
		user    *UserData
		wantErr *errors.Error
	}{
		"fresh user": {
			user: &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub},
		},
		"user with a sequence": {
			user: &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub, Sequence: 42},
		},
		"missing metadata": {
			user:    &UserData{Pubkey: pub},
			wantErr: errors.ErrMetadata,
		},
		"negative sequence": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub, Sequence: -1},
			wantErr: ErrInvalidSequence,
		},
		"sequence without a key": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Sequence: 3},
			wantErr: ErrInvalidSequence,
		},
		"invalid key": {
			user:    &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: crypto.PublicKey("short")},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.user.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{Metadata: &custody.Metadata{Schema: 1}, Sequence: 5}
	if err := u.CheckAndIncrementSequence(4); !ErrInvalidSequence.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := u.CheckAndIncrementSequence(5); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if u.Sequence != 6 {
		t.Fatalf("want sequence 6, got %d", u.Sequence)
	}

	u.Sequence = maxSequenceValue
	if err := u.CheckAndIncrementSequence(maxSequenceValue); !errors.ErrOverflow.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestUserIsPersisted(t *testing.T) {
	db := store.MemStore()
	pub := custodytest.NewKey().PublicKey()

	u, err := User(db, pub)
	if err != nil {
		t.Fatalf("cannot load user: %s", err)
	}
	if u.Sequence != 0 {
		t.Fatalf("want zero sequence, got %d", u.Sequence)
	}
	u.Sequence = 7
	if _, err := NewBucket().Put(db, pub.Address(), u); err != nil {
		t.Fatalf("cannot save user: %s", err)
	}

	loaded, err := User(db, pub)
	if err != nil {
		t.Fatalf("cannot load user: %s", err)
	}
	if loaded.Sequence != 7 || !loaded.Pubkey.Address().Equals(pub.Address()) {
		t.Fatalf("unexpected user: %v", loaded)
	}
}
