package awscredentials

import "regexp"

type service struct {
	defaultRegion string
}

var accessKeyIDPattern = regexp.MustCompile(`^[A-Z0-9]{20}$`)

const secretAccessKeyLength = 40
