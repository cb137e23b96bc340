package main

import "errors"

var (
	errLoadConfig      = errors.New("intl: load config")
	errUnknownSource   = errors.New("intl: unknown catalog source")
	errUnknownMode     = errors.New("intl: unknown render mode")
	errMissingValues   = errors.New("intl: invalid missing values policy")
	errMissingBucket   = errors.New("intl: s3 source requires INTL_S3_BUCKET")
	errInvalidValue    = errors.New("intl: values must have the form name=value")
	errCatalogProblems = errors.New("intl: catalog has problems")
	errRenderFailed    = errors.New("intl: message could not be rendered")
	errUnknownTarget   = errors.New("intl: unknown push target")
	errInvalidSchedule = errors.New("intl: invalid reload schedule")
)
