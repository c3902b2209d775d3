package httpclient

import (
	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newRestyBaseClient creates the resty.Client every Client issues requests through.
// Retries stay at resty's default of zero and no timeout is set.
func newRestyBaseClient() *resty.Client {
	c := resty.New()
	c.SetJSONMarshaler(json.Marshal)
	c.SetJSONUnmarshaler(json.Unmarshal)
	return c
}
