package wizard

import "errors"

var (
	errRPCURLRequired = errors.New("rpc url is required")
	errRPCURLInvalid  = errors.New("rpc url must be a valid http(s) URL")
)
