package timelock

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
)

func TestUpdateConfiguration(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	stranger := custodytest.NewCondition().Address()
	db := store.MemStore()

	next := &Configuration{Metadata: &custody.Metadata{Schema: 1}, Owner: owner, MaxExtension: 60}

	// Configuration must be created by genesis first.
	assert.IsErr(t, errors.ErrUnauthorized, UpdateConfiguration(db, owner, next))

	initial := &Configuration{Metadata: &custody.Metadata{Schema: 1}, Owner: owner}
	assert.Nil(t, gconf.Save(db, packageName, initial))

	assert.IsErr(t, errors.ErrUnauthorized, UpdateConfiguration(db, stranger, next))
	assert.IsErr(t, errors.ErrEmpty, UpdateConfiguration(db, owner, nil))
	invalid := &Configuration{Metadata: &custody.Metadata{Schema: 1}, MaxExtension: -5}
	assert.IsErr(t, errors.ErrInput, UpdateConfiguration(db, owner, invalid))

	assert.Nil(t, UpdateConfiguration(db, owner, next))
	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), conf.MaxExtension)
}

func TestConfigurationValidate(t *testing.T) {
	cases := map[string]struct {
		conf    *Configuration
		wantErr *errors.Error
	}{
		"unbounded without an owner": {
			conf: &Configuration{Metadata: &custody.Metadata{Schema: 1}},
		},
		"bounded with an owner": {
			conf: &Configuration{
				Metadata:     &custody.Metadata{Schema: 1},
				Owner:        custodytest.NewCondition().Address(),
				MaxExtension: 86400,
			},
		},
		"missing metadata": {
			conf:    &Configuration{},
			wantErr: errors.ErrMetadata,
		},
		"invalid owner": {
			conf:    &Configuration{Metadata: &custody.Metadata{Schema: 1}, Owner: custody.Address("owner")},
			wantErr: errors.ErrInput,
		},
		"negative extension": {
			conf:    &Configuration{Metadata: &custody.Metadata{Schema: 1}, MaxExtension: -1},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.conf.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
