package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type testConfig struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    custody.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/custody.Address" json:"owner,omitempty"`
	Limit    int64             `protobuf:"varint,3,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *testConfig) Reset()                    { *m = testConfig{} }
func (m *testConfig) String() string            { return proto.CompactTextString(m) }
func (*testConfig) ProtoMessage()               {}
func (m *testConfig) GetOwner() custody.Address { return m.Owner }

func (m *testConfig) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Limit < 0 {
		return errors.Wrap(errors.ErrState, "negative limit")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var conf testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &conf))

	assert.IsErr(t, errors.ErrState, Save(db, "mypkg", &testConfig{
		Metadata: &custody.Metadata{Schema: 1},
		Limit:    -4,
	}))

	want := &testConfig{Metadata: &custody.Metadata{Schema: 1}, Limit: 42}
	assert.Nil(t, Save(db, "mypkg", want))
	assert.Nil(t, Load(db, "mypkg", &conf))
	assert.Equal(t, int64(42), conf.Limit)

	// Configurations of different packages are independent.
	assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &conf))
}

func TestInitConfig(t *testing.T) {
	owner := custodytest.NewCondition().Address()

	cases := map[string]struct {
		genesis   string
		wantErr   *errors.Error
		wantLimit int64
	}{
		"valid configuration": {
			genesis:   `{"conf": {"mypkg": {"metadata": {"schema": 1}, "owner": "` + owner.String() + `", "limit": 7}}}`,
			wantLimit: 7,
		},
		"missing package": {
			genesis: `{"conf": {"otherpkg": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"mypkg": {"limit": 7}}}`,
			wantErr: errors.ErrMetadata,
		},
		"malformed configuration": {
			genesis: `{"conf": {"mypkg": {"limit": "many"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var conf testConfig
			assert.IsErr(t, tc.wantErr, InitConfig(db, opts, "mypkg", &conf))
			if tc.wantErr != nil {
				return
			}

			var loaded testConfig
			assert.Nil(t, Load(db, "mypkg", &loaded))
			assert.Equal(t, tc.wantLimit, loaded.Limit)
			assert.Equal(t, true, owner.Equals(loaded.Owner))
		})
	}
}

func TestUpdate(t *testing.T) {
	owner := custodytest.NewCondition().Address()
	stranger := custodytest.NewCondition().Address()
	next := &testConfig{Metadata: &custody.Metadata{Schema: 1}, Owner: owner, Limit: 99}

	db := store.MemStore()
	assert.IsErr(t, errors.ErrUnauthorized, Update(db, "mypkg", owner, &testConfig{}, next))

	assert.Nil(t, Save(db, "mypkg", &testConfig{Metadata: &custody.Metadata{Schema: 1}, Owner: owner, Limit: 1}))
	assert.IsErr(t, errors.ErrUnauthorized, Update(db, "mypkg", stranger, &testConfig{}, next))
	assert.Nil(t, Update(db, "mypkg", owner, &testConfig{}, next))

	var loaded testConfig
	assert.Nil(t, Load(db, "mypkg", &loaded))
	assert.Equal(t, int64(99), loaded.Limit)

	assert.Nil(t, Save(db, "ownerless", &testConfig{Metadata: &custody.Metadata{Schema: 1}}))
	assert.IsErr(t, errors.ErrUnauthorized, Update(db, "ownerless", owner, &testConfig{}, next))
}
