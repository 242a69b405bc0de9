package coin

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

// collect adds all coins to an empty set and validates the result.
func collect(cs ...Coin) (Coins, error) {
	var (
		coins Coins
		err   error
	)
	for _, c := range cs {
		if coins, err = coins.Add(c); err != nil {
			return nil, err
		}
	}
	return coins, coins.Validate()
}

func TestMakeCoins(t *testing.T) {
	cases := map[string]struct {
		inputs   []Coin
		isEmpty  bool
		isNonNeg bool
		has      []Coin
		dontHave []Coin
		wantErr  bool
	}{
		"empty": {
			isEmpty:  true,
			isNonNeg: true,
			dontHave: []Coin{NewCoin(0, 0, "")},
		},
		"ignore 0": {
			inputs:   []Coin{NewCoin(0, 0, "FOO")},
			isEmpty:  true,
			isNonNeg: true,
			dontHave: []Coin{NewCoin(0, 0, "FOO")},
		},
		"simple": {
			inputs:   []Coin{NewCoin(40, 0, "FUD")},
			isNonNeg: true,
			has:      []Coin{NewCoin(10, 0, "FUD"), NewCoin(40, 0, "FUD")},
			dontHave: []Coin{NewCoin(40, 1, "FUD"), NewCoin(40, 0, "FUN")},
		},
		"out of order, with negative": {
			inputs:   []Coin{NewCoin(-20, -3, "FIN"), NewCoin(40, 5, "BON")},
			has:      []Coin{NewCoin(40, 4, "BON"), NewCoin(-30, 0, "FIN")},
			dontHave: []Coin{NewCoin(40, 6, "BON"), NewCoin(-20, 0, "FIN")},
		},
		"combine and remove": {
			inputs:   []Coin{NewCoin(-123, -456, "BOO"), NewCoin(123, 456, "BOO")},
			isEmpty:  true,
			isNonNeg: true,
			dontHave: []Coin{NewCoin(0, 0, "BOO")},
		},
		"invalid currency": {
			inputs:  []Coin{NewCoin(1, 2, "AL2")},
			wantErr: true,
		},
		"invalid value": {
			inputs:  []Coin{NewCoin(MaxInt+3, 2, "AND")},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s, err := collect(tc.inputs...)
			if tc.wantErr {
				assert.Equal(t, true, err != nil)
				return
			}
			assert.Nil(t, err)
			assert.Nil(t, s.Validate())
			assert.Equal(t, tc.isEmpty, s.IsEmpty())
			assert.Equal(t, tc.isNonNeg, s.IsNonNegative())
			for _, h := range tc.has {
				assert.Equal(t, true, s.Contains(h))
			}
			for _, d := range tc.dontHave {
				assert.Equal(t, false, s.Contains(d))
			}
		})
	}
}

func TestCoinsAddDoesNotModifyReceiver(t *testing.T) {
	wallet, err := collect(NewCoin(5, 0, "ABC"), NewCoin(7, 0, "XYZ"))
	assert.Nil(t, err)

	drained, err := wallet.Subtract(NewCoin(5, 0, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(drained))
	assert.Equal(t, NewCoin(7, 0, "XYZ"), drained.Get("XYZ"))
	assert.Equal(t, NewCoin(0, 0, "ABC"), drained.Get("ABC"))

	assert.Equal(t, 2, len(wallet))
	assert.Equal(t, NewCoin(5, 0, "ABC"), wallet.Get("ABC"))

	same, err := wallet.Add(NewCoin(0, 0, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, true, same.Equals(wallet))

	inserted, err := wallet.Add(NewCoin(1, 0, "MID"))
	assert.Nil(t, err)
	assert.Nil(t, inserted.Validate())
	assert.Equal(t, 3, len(inserted))
	assert.Equal(t, 2, len(wallet))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"nil":        {coins: nil},
		"valid":      {coins: Coins{NewCoinp(1, 0, "ABC"), NewCoinp(2, 0, "DEF")}},
		"not sorted": {coins: Coins{NewCoinp(2, 0, "DEF"), NewCoinp(1, 0, "ABC")}, wantErr: errors.ErrState},
		"zero coin":  {coins: Coins{NewCoinp(0, 0, "ABC")}, wantErr: errors.ErrState},
		"nil coin":   {coins: Coins{nil}, wantErr: errors.ErrEmpty},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.coins.Validate())
		})
	}
}
