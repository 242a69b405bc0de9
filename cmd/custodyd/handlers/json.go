package handlers

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/timelock"
)

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Errror"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	JSONErrs(w, code, []string{errText})
}

// JSONErrs write multiple errors as JSON encoded response.
func JSONErrs(w http.ResponseWriter, code int, errs []string) {
	resp := struct {
		Errors []string `json:"errors"`
	}{
		Errors: errs,
	}
	JSONResp(w, code, resp)
}

// JSONRedirect return redirect response, but with JSON formatted body.
func JSONRedirect(w http.ResponseWriter, code int, urlStr string) {
	w.Header().Set("Location", urlStr)
	var content = struct {
		Code     int
		Location string
	}{
		Code:     code,
		Location: urlStr,
	}
	JSONResp(w, code, content)
}

// JSONError writes an error response. The status code is derived from the
// error type. Internal errors are redacted unless debug is set.
func JSONError(w http.ResponseWriter, err error, debug bool) {
	code, msg := errors.ABCIInfo(err, debug)
	w.Header().Set("X-Error-Code", strconv.FormatUint(uint64(code), 10))
	JSONErr(w, httpStatus(err), msg)
}

func httpStatus(err error) int {
	switch {
	// A failed transfer carries the ledger error as well.
	case timelock.ErrTransferFailed.Is(err):
		return http.StatusBadGateway
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		return http.StatusUnauthorized
	case errors.ErrUnavailable.Is(err):
		return http.StatusServiceUnavailable
	case timelock.ErrNotYetReleasable.Is(err),
		timelock.ErrNothingToRelease.Is(err),
		timelock.ErrScheduleRegression.Is(err),
		errors.ErrDuplicate.Is(err),
		errors.ErrState.Is(err):
		return http.StatusConflict
	case errors.Code(err) == 1, errors.ErrDatabase.Is(err), errors.ErrPanic.Is(err):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// hexbytes is a byte type that JSON serialize to hex encoded string.
type hexbytes []byte

func (b hexbytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *hexbytes) UnmarshalJSON(enc []byte) error {
	var s string
	if err := json.Unmarshal(enc, &s); err != nil {
		return err
	}
	val, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = val
	return nil
}
