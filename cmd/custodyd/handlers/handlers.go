package handlers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/timelock"
)

// maxBodySize limits the size of a request body.
const maxBodySize = 1 << 16

// NewRouter returns a handler serving all custody endpoints. Metrics are
// served by given handler.
func NewRouter(app *App, metrics http.Handler) http.Handler {
	rt := mux.NewRouter().StrictSlash(true)
	rt.Handle("/vaults", &VaultCreateHandler{app: app}).Methods("POST")
	rt.Handle("/vaults", &VaultListHandler{app: app}).Methods("GET")
	rt.Handle("/vaults/{id}", &VaultDetailHandler{app: app}).Methods("GET")
	rt.Handle("/vaults/{id}/relock", &VaultRelockHandler{app: app}).Methods("POST")
	rt.Handle("/vaults/{id}/release", &VaultReleaseHandler{app: app}).Methods("POST")
	rt.Handle("/send", &SendHandler{app: app}).Methods("POST")
	rt.Handle("/wallets/{address}", &WalletHandler{app: app}).Methods("GET")
	rt.Handle("/conf/timelock", &ConfigurationHandler{app: app}).Methods("GET", "POST")
	rt.Handle("/info", &InfoHandler{ChainID: app.ChainID}).Methods("GET")
	if metrics != nil {
		rt.Handle("/metrics", metrics).Methods("GET")
	}
	rt.NotFoundHandler = &DefaultHandler{}
	return rt
}

// SignedRequest is the body of a request that must be authorized. The
// signature is computed over the exact bytes of the payload.
type SignedRequest struct {
	Payload   json.RawMessage    `json:"payload"`
	Signature *sigs.StdSignature `json:"signature,omitempty"`
}

func decodeSigned(w http.ResponseWriter, r *http.Request) (*SignedRequest, error) {
	var req SignedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	if len(req.Payload) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "payload")
	}
	return &req, nil
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read body: %s", err)
	}
	if buf.Len() == 0 {
		return nil
	}
	if err := json.Unmarshal(buf.Bytes(), dst); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode body: %s", err)
	}
	return nil
}

// signer verifies the request signature and returns the address of the
// signing key. The signer sequence is incremented in db.
func (a *App) signer(db custody.KVStore, req *SignedRequest) (custody.Address, error) {
	cond, err := sigs.VerifySignature(db, req.Signature, req.Payload, a.ChainID)
	if err != nil {
		return nil, err
	}
	return cond.Address(), nil
}

func decodePayload(req *SignedRequest, dst interface{}) error {
	if err := json.Unmarshal(req.Payload, dst); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode payload: %s", err)
	}
	return nil
}

func vaultID(r *http.Request) ([]byte, error) {
	raw := mux.Vars(r)["id"]
	id, err := hex.DecodeString(raw)
	if err != nil || len(id) == 0 {
		return nil, errors.Wrapf(errors.ErrInput, "invalid vault id %q", raw)
	}
	return id, nil
}

// vaultResponse is the JSON representation of a vault.
type vaultResponse struct {
	ID          hexbytes         `json:"id"`
	Address     custody.Address  `json:"address"`
	Asset       string           `json:"asset"`
	Beneficiary custody.Address  `json:"beneficiary"`
	Depositor   custody.Address  `json:"depositor,omitempty"`
	ReleaseTime custody.UnixTime `json:"release_time"`
	CreatedAt   custody.UnixTime `json:"created_at"`
	CurrentTime custody.UnixTime `json:"current_time,omitempty"`
	Pending     *coin.Coin       `json:"pending,omitempty"`
	State       string           `json:"state,omitempty"`
}

func newVaultResponse(id []byte, v *timelock.Vault) vaultResponse {
	return vaultResponse{
		ID:          id,
		Address:     v.Address,
		Asset:       v.Asset,
		Beneficiary: v.Beneficiary,
		Depositor:   v.Depositor,
		ReleaseTime: v.ReleaseTime,
		CreatedAt:   v.CreatedAt,
	}
}

type VaultCreateHandler struct {
	app *App
}

// VaultCreateHandler creates a new vault. The payload is a CreateMsg. The
// signature is optional and when present the signer is recorded as the
// depositor.
func (h *VaultCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSigned(w, r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	var msg timelock.CreateMsg
	if err := decodePayload(req, &msg); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	if msg.Metadata == nil {
		msg.Metadata = &custody.Metadata{Schema: 1}
	}
	if err := msg.Validate(); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}

	ctx := h.app.context(r)
	var resp vaultResponse
	err = h.app.update(func(db custody.KVStore) error {
		var depositor custody.Address
		if req.Signature != nil {
			signer, err := h.app.signer(db, req)
			if err != nil {
				return err
			}
			depositor = signer
		}
		id, vault, err := h.app.Vaults.Create(ctx, db, depositor, msg.Asset, msg.Beneficiary, msg.ReleaseTime)
		if err != nil {
			return err
		}
		resp = newVaultResponse(id, vault)
		return nil
	})
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusCreated, resp)
}

type VaultDetailHandler struct {
	app *App
}

// VaultDetailHandler returns the vault together with the amount it holds and
// its state at the request time.
func (h *VaultDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := vaultID(r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	status, err := h.app.Vaults.Status(h.app.context(r), h.app.DB, id)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	resp := newVaultResponse(status.ID, status.Vault)
	resp.CurrentTime = status.CurrentTime
	resp.Pending = &status.Pending
	resp.State = status.State.String()
	JSONResp(w, http.StatusOK, resp)
}

type VaultListHandler struct {
	app *App
}

// VaultListHandler returns all vaults of the beneficiary given in the query.
func (h *VaultListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("beneficiary")
	if raw == "" {
		JSONErr(w, http.StatusBadRequest, "beneficiary is required")
		return
	}
	beneficiary, err := custody.ParseAddress(raw)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	ids, vaults, err := h.app.Vaults.ByBeneficiary(h.app.DB, beneficiary)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	resp := struct {
		Vaults []vaultResponse `json:"vaults"`
	}{
		Vaults: make([]vaultResponse, 0, len(vaults)),
	}
	for i, v := range vaults {
		resp.Vaults = append(resp.Vaults, newVaultResponse(ids[i], v))
	}
	JSONResp(w, http.StatusOK, resp)
}

// relockPayload is signed by the beneficiary. The vault ID is part of the
// payload so that a signature cannot be used for another vault.
type relockPayload struct {
	VaultID     hexbytes         `json:"vault_id"`
	ReleaseTime custody.UnixTime `json:"release_time"`
}

type VaultRelockHandler struct {
	app *App
}

// VaultRelockHandler postpones the release time of a vault. The request must
// be signed by the beneficiary.
func (h *VaultRelockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := vaultID(r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	req, err := decodeSigned(w, r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	var p relockPayload
	if err := decodePayload(req, &p); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	msg := timelock.RelockMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		VaultID:     p.VaultID,
		ReleaseTime: p.ReleaseTime,
	}
	if err := msg.Validate(); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	if !bytes.Equal(msg.VaultID, id) {
		JSONError(w, errors.Wrap(errors.ErrInput, "vault id does not match the signed payload"), h.app.Debug)
		return
	}

	ctx := h.app.context(r)
	var resp vaultResponse
	err = h.app.update(func(db custody.KVStore) error {
		caller, err := h.app.signer(db, req)
		if err != nil {
			return err
		}
		if err := h.app.Vaults.Relock(ctx, db, id, caller, msg.ReleaseTime); err != nil {
			return err
		}
		vault, err := h.app.Vaults.Vault(db, id)
		if err != nil {
			return err
		}
		resp = newVaultResponse(id, vault)
		return nil
	})
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusOK, resp)
}

type VaultReleaseHandler struct {
	app *App
}

// VaultReleaseHandler transfers all funds of a releasable vault to its
// beneficiary. Anyone can request a release.
func (h *VaultReleaseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := vaultID(r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	ctx := h.app.context(r)
	var amount coin.Coin
	err = h.app.update(func(db custody.KVStore) error {
		ledger := cash.NewLedger(h.app.Wallets, db)
		released, err := h.app.Vaults.UsingLedger(ledger).Release(ctx, db, id)
		if err != nil {
			return err
		}
		amount = released
		return nil
	})
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		ID     hexbytes  `json:"id"`
		Amount coin.Coin `json:"amount"`
	}{
		ID:     id,
		Amount: amount,
	})
}

type SendHandler struct {
	app *App
}

// SendHandler moves funds between two wallets. The payload is a SendMsg and
// it must be signed by the owner of the source wallet. This is how a vault
// is funded.
func (h *SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSigned(w, r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	var msg cash.SendMsg
	if err := decodePayload(req, &msg); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	if msg.Metadata == nil {
		msg.Metadata = &custody.Metadata{Schema: 1}
	}
	if err := msg.Validate(); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}

	err = h.app.update(func(db custody.KVStore) error {
		signer, err := h.app.signer(db, req)
		if err != nil {
			return err
		}
		if !signer.Equals(msg.Source) {
			return errors.Wrap(errors.ErrUnauthorized, "source wallet does not belong to the signer")
		}
		return h.app.Wallets.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount)
	})
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusOK, &msg)
}

type WalletHandler struct {
	app *App
}

// WalletHandler returns all coins held by an address. Any address, including
// a vault address, can be queried.
func (h *WalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	addr, err := custody.ParseAddress(mux.Vars(r)["address"])
	if err == nil && addr == nil {
		err = errors.Wrap(errors.ErrEmpty, "address")
	}
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	coins, err := h.app.Wallets.Balance(h.app.DB, addr)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		coins = coin.Coins{}
	default:
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Address custody.Address `json:"address"`
		Coins   coin.Coins      `json:"coins"`
	}{
		Address: addr,
		Coins:   coins,
	})
}

type ConfigurationHandler struct {
	app *App
}

// ConfigurationHandler returns the timelock configuration on GET. On POST
// the configuration is replaced by the signed payload. Only the current
// owner can update the configuration.
func (h *ConfigurationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		conf, err := timelock.LoadConfiguration(h.app.DB)
		if err != nil {
			JSONError(w, err, h.app.Debug)
			return
		}
		JSONResp(w, http.StatusOK, conf)
		return
	}

	req, err := decodeSigned(w, r)
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	var conf timelock.Configuration
	if err := decodePayload(req, &conf); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	if conf.Metadata == nil {
		conf.Metadata = &custody.Metadata{Schema: 1}
	}
	msg := timelock.UpdateConfigurationMsg{
		Metadata: &custody.Metadata{Schema: 1},
		Patch:    &conf,
	}
	if err := msg.Validate(); err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}

	err = h.app.update(func(db custody.KVStore) error {
		signer, err := h.app.signer(db, req)
		if err != nil {
			return err
		}
		return timelock.UpdateConfiguration(db, signer, msg.Patch)
	})
	if err != nil {
		JSONError(w, err, h.app.Debug)
		return
	}
	JSONResp(w, http.StatusOK, msg.Patch)
}

type InfoHandler struct {
	ChainID string
}

// InfoHandler returns information about this instance of custodyd.
func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	JSONResp(w, http.StatusOK, struct {
		BuildHash    string `json:"build_hash"`
		BuildVersion string `json:"build_version"`
		ChainID      string `json:"chain_id"`
	}{
		BuildHash:    custody.GitCommit,
		BuildVersion: custody.Version(),
		ChainID:      h.ChainID,
	})
}

// DefaultHandler is used to handle the request that no other handler wants.
type DefaultHandler struct{}

func (h *DefaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// No trailing slash.
	if len(r.URL.Path) > 1 && r.URL.Path[len(r.URL.Path)-1] == '/' {
		path := strings.TrimRight(r.URL.Path, "/")
		JSONRedirect(w, http.StatusPermanentRedirect, path)
		return
	}
	JSONErr(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
