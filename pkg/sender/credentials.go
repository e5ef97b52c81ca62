package sender

import "encoding/base64"

// encodeCredentials produces the Basic credential value for the given
// application ID and master secret: standard Base64 over the UTF-8 bytes of
// "id:secret". The "Basic " scheme prefix is added by the transport.
func encodeCredentials(pushApplicationID, masterSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(pushApplicationID + ":" + masterSecret))
}
