package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestGenesis(t *testing.T) {
	alice := custodytest.NewCondition().Address()

	cases := map[string]struct {
		genesis   string
		wantErr   *errors.Error
		wantAlice coin.Coins
	}{
		"no cash section": {
			genesis: `{}`,
		},
		"empty list": {
			genesis: `{"cash": []}`,
		},
		"single account": {
			genesis: `{"cash": [{
				"address": "` + alice.String() + `",
				"coins": ["10.5 IOV", "3 ETH"]
			}]}`,
			wantAlice: coin.Coins{coin.NewCoinp(3, 0, "ETH"), coin.NewCoinp(10, 500000000, "IOV")},
		},
		"same account listed twice is combined": {
			genesis: `{"cash": [
				{"address": "` + alice.String() + `", "coins": ["1 IOV"]},
				{"address": "` + alice.String() + `", "coins": ["2 IOV"]}
			]}`,
			wantAlice: coin.Coins{coin.NewCoinp(3, 0, "IOV")},
		},
		"invalid address": {
			genesis: `{"cash": [{"address": "1234", "coins": ["1 IOV"]}]}`,
			wantErr: errors.ErrInput,
		},
		"missing address": {
			genesis: `{"cash": [{"coins": ["1 IOV"]}]}`,
			wantErr: errors.ErrInput,
		},
		"negative coin": {
			genesis: `{"cash": [{"address": "` + alice.String() + `", "coins": ["-1 IOV"]}]}`,
			wantErr: errors.ErrAmount,
		},
		"malformed section": {
			genesis: `{"cash": {"address": "` + alice.String() + `"}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, 1000, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			got, err := NewController(NewBucket()).Balance(db, alice)
			if tc.wantAlice == nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			if !got.Equals(tc.wantAlice) {
				t.Fatalf("want %v, got %v", tc.wantAlice, got)
			}
		})
	}
}
