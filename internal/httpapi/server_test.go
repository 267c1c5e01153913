// internal/httpapi/server_test.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/neilotoole/slogt"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
)

type fakeTransmitter struct {
	frames int
}

func (f *fakeTransmitter) Transmit(bits []protocol.Bit, repeat bool) error {
	f.frames++
	return nil
}

func newServer(t *testing.T) (*Server, *remote.Controller, *fakeTransmitter) {
	tx := &fakeTransmitter{}
	ctrl := remote.New(remote.DefaultConfig(), tx, slogt.New(t))
	other := remote.New(remote.DefaultConfig(), &fakeTransmitter{}, slogt.New(t))

	s := New([]Unit{
		{ID: "living", Controller: ctrl},
		{ID: "bedroom", Controller: other},
	}, slogt.New(t))
	return s, ctrl, tx
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateJSON {
	t.Helper()
	var st stateJSON
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestListUnits_Sorted(t *testing.T) {
	s, _, _ := newServer(t)

	rec := do(t, s, http.MethodGet, "/units", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var units []unitJSON
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &units))
	assert.Equal(t, 2, len(units))
	assert.Equal(t, "bedroom", units[0].ID)
	assert.Equal(t, "living", units[1].ID)
	assert.Equal(t, "auto", units[1].State.Mode)
	assert.Equal(t, "none", units[1].State.FanSpeed)
}

func TestGetState_UnknownUnit(t *testing.T) {
	s, _, _ := newServer(t)

	rec := do(t, s, http.MethodGet, "/units/garage/state", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutState_PowerOnIsOneFrame(t *testing.T) {
	s, ctrl, tx := newServer(t)

	rec := do(t, s, http.MethodPut, "/units/living/state",
		`{"power": true, "mode": "cool", "temperature": 35, "fan_speed": "high"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	st := decodeState(t, rec)
	assert.True(t, st.Powered)
	assert.Equal(t, "cool", st.Mode)
	assert.Equal(t, 30, st.Temperature)
	assert.Equal(t, "high", st.FanSpeed)
	assert.Equal(t, uint64(1), st.Frames)
	assert.Equal(t, 1, tx.frames)
	assert.True(t, ctrl.IsPoweredOn())
}

func TestPutState_BadEnum(t *testing.T) {
	s, _, tx := newServer(t)

	for _, body := range []string{
		`{"mode": "turbo"}`,
		`{"fan_speed": "max"}`,
		`{"timer_on": "45m"}`,
		`{"power": "yes"}`,
	} {
		rec := do(t, s, http.MethodPut, "/units/living/state", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, 0, tx.frames)
}

func TestPutState_TimersAndPowerOff(t *testing.T) {
	s, _, _ := newServer(t)

	rec := do(t, s, http.MethodPut, "/units/living/state", `{"timer_on": "2h", "timer_off": "2h"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.True(t, st.Powered)
	assert.Equal(t, "2h0m0s", st.TimerOn)
	assert.Equal(t, "2h30m0s", st.TimerOff)

	rec = do(t, s, http.MethodPut, "/units/living/state", `{"power": false}`)
	st = decodeState(t, rec)
	assert.False(t, st.Powered)
	assert.Equal(t, "off", st.TimerOn)
	assert.Equal(t, "off", st.TimerOff)
}

func TestPressButton(t *testing.T) {
	s, _, tx := newServer(t)

	rec := do(t, s, http.MethodPost, "/units/living/buttons/power", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeState(t, rec).Powered)

	rec = do(t, s, http.MethodPost, "/units/living/buttons/temp-up", "")
	assert.Equal(t, 21, decodeState(t, rec).Temperature)
	assert.Equal(t, 2, tx.frames)

	rec = do(t, s, http.MethodPost, "/units/living/buttons/self-destruct", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/units/attic/buttons/power", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFrame(t *testing.T) {
	s, ctrl, _ := newServer(t)

	rec := do(t, s, http.MethodGet, "/units/living/frame", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ctrl.PowerOn()
	rec = do(t, s, http.MethodGet, "/units/living/frame", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var f frameJSON
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "4DF814", f.Normal)
	assert.Equal(t, "B207EB", f.Inverted)
	assert.Equal(t, "10110010 01001101 00011111 11100000 00101000 11010111", f.Bits)
	assert.Equal(t, uint64(1), f.Frames)
	assert.True(t, f.Repeat)
	assert.True(t, strings.HasPrefix(f.IRSignal, "int IRsignal[] = {\n"))
	assert.Equal(t, 2, strings.Count(f.IRSignal, "\t436, 436,\n"))
}

func TestGetFrame_SingleFrameCommand(t *testing.T) {
	s, ctrl, _ := newServer(t)
	ctrl.PowerOn()

	rec := do(t, s, http.MethodPost, "/units/living/buttons/air-direction", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/units/living/frame", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var f frameJSON
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "4DF007", f.Normal)
	assert.False(t, f.Repeat)
	assert.Equal(t, 1, strings.Count(f.IRSignal, "\t436, 436,\n"))
}
