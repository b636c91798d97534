package auth

import (
	"net/http"
	"os"

	"majdoorsathi/otp"
	"majdoorsathi/sms"

	"github.com/julienschmidt/httprouter"
)

var (
	codes   otp.Store
	gateway *sms.Gateway
)

// Init wires the OTP store and SMS gateway. The memory store is the
// default; OTP_STORE=redis shares codes across instances.
func Init() {
	if os.Getenv("OTP_STORE") == "redis" {
		codes = otp.NewRedisStore()
	} else {
		codes = otp.NewMemoryStore()
	}
	gateway = sms.NewGateway()
}

func SendOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sendOTPHandler(w, r)
}
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	verifyOTPHandler(w, r)
}
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registerHandler(w, r)
}
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r)
}
func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logoutUserHandler(w, r)
}
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	refreshTokenHandler(w, r)
}
