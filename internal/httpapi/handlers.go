// internal/httpapi/handlers.go
package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/pulse"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
)

type errorJSON struct {
	Error string `json:"error"`
}

type stateJSON struct {
	Powered     bool   `json:"powered"`
	Temperature int    `json:"temperature"`
	Mode        string `json:"mode"`
	FanSpeed    string `json:"fan_speed"`
	TimerOn     string `json:"timer_on"`
	TimerOff    string `json:"timer_off"`
	Sleep       bool   `json:"sleep"`
	Pin         int    `json:"pin"`
	Frames      uint64 `json:"frames"`
	LastError   string `json:"last_error,omitempty"`
}

type unitJSON struct {
	ID    string    `json:"id"`
	State stateJSON `json:"state"`
}

// stateRequest is a partial update. Absent fields are left alone.
type stateRequest struct {
	Power       *bool   `json:"power"`
	Mode        *string `json:"mode"`
	FanSpeed    *string `json:"fan_speed"`
	Temperature *int    `json:"temperature"`
	TimerOn     *string `json:"timer_on"`
	TimerOff    *string `json:"timer_off"`
}

type frameJSON struct {
	Normal   string `json:"normal"`
	Inverted string `json:"inverted"`
	Bits     string `json:"bits"`
	Repeat   bool   `json:"repeat"`
	Frames   uint64 `json:"frames"`
	IRSignal string `json:"irsignal"`
}

func stateOf(ctrl Controller) stateJSON {
	st := ctrl.State()
	frames := ctrl.LastFrame().Frames

	out := stateJSON{
		Powered:     st.Powered,
		Temperature: st.Temperature,
		Mode:        st.Mode.String(),
		FanSpeed:    st.FanSpeed.String(),
		TimerOn:     st.TimerOn.String(),
		TimerOff:    st.TimerOff.String(),
		Sleep:       st.Sleep,
		Pin:         st.Pin,
		Frames:      frames,
	}
	if err := ctrl.Err(); err != nil {
		out.LastError = err.Error()
	}
	return out
}

// GET /units
func (s *Server) listUnits(c *gin.Context) {
	out := make([]unitJSON, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, unitJSON{ID: id, State: stateOf(s.units[id])})
	}
	c.JSON(http.StatusOK, out)
}

// GET /units/:id/state
func (s *Server) getState(c *gin.Context) {
	ctrl, ok := s.unit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(ctrl))
}

// PUT /units/:id/state
func (s *Server) putState(c *gin.Context) {
	ctrl, ok := s.unit(c)
	if !ok {
		return
	}

	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
		return
	}

	// Parse everything before touching the controller.
	var (
		mode              protocol.Mode
		fan               protocol.FanSpeed
		timerOn, timerOff protocol.TimerTime
		err               error
	)
	if req.Mode != nil {
		if mode, err = protocol.ParseMode(*req.Mode); err != nil {
			c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
			return
		}
	}
	if req.FanSpeed != nil {
		if fan, err = protocol.ParseFanSpeed(*req.FanSpeed); err != nil {
			c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
			return
		}
	}
	if req.TimerOn != nil {
		if timerOn, err = protocol.ParseTimer(*req.TimerOn); err != nil {
			c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
			return
		}
	}
	if req.TimerOff != nil {
		if timerOff, err = protocol.ParseTimer(*req.TimerOff); err != nil {
			c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
			return
		}
	}

	powered := ctrl.State().Powered
	turnOn := req.Power != nil && *req.Power && !powered
	turnOff := req.Power != nil && !*req.Power && powered

	if turnOff {
		ctrl.PowerOff()
	}

	// While off these only update the stored state, so a power-on below
	// carries them in a single frame.
	if req.Mode != nil {
		ctrl.SetMode(mode)
	}
	if req.Temperature != nil {
		ctrl.SetTemperature(*req.Temperature)
	}
	if req.FanSpeed != nil {
		ctrl.SetFanSpeed(fan)
	}

	if turnOn {
		ctrl.PowerOn()
	}

	if req.TimerOn != nil {
		ctrl.SetTimerOn(timerOn)
	}
	if req.TimerOff != nil {
		ctrl.SetTimerOff(timerOff)
	}

	c.JSON(http.StatusOK, stateOf(ctrl))
}

// POST /units/:id/buttons/:button
func (s *Server) pressButton(c *gin.Context) {
	ctrl, ok := s.unit(c)
	if !ok {
		return
	}

	b, err := remote.ParseButton(c.Param("button"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorJSON{Error: err.Error()})
		return
	}

	ctrl.Press(b)
	c.JSON(http.StatusOK, stateOf(ctrl))
}

// GET /units/:id/frame
func (s *Server) getFrame(c *gin.Context) {
	ctrl, ok := s.unit(c)
	if !ok {
		return
	}

	last := ctrl.LastFrame()
	if last.Frames == 0 && last.Frame == (protocol.Frame{}) {
		c.JSON(http.StatusNotFound, errorJSON{Error: "no frame sent yet"})
		return
	}

	bits := last.Frame.Bits()

	var dump strings.Builder
	if err := pulse.WriteDump(&dump, pulse.BuildTrain(bits, last.Repeat)); err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, frameJSON{
		Normal:   last.Frame.Normal.String(),
		Inverted: last.Frame.Inverted.String(),
		Bits:     protocol.FormatBits(bits),
		Repeat:   last.Repeat,
		Frames:   last.Frames,
		IRSignal: dump.String(),
	})
}
