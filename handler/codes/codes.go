package codes

import (
	"credit/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
)

// Twirp wraps err into a twirp error carrying the stable core error code as
// meta. Already-twirp errors pass through.
func Twirp(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	code := core.CodeOf(err)

	var twerr twirp.Error
	switch code {
	case core.ErrCodeAccountNotFound:
		twerr = twirp.NotFoundError(err.Error())
	case core.ErrCodeNotTokenOwner:
		twerr = twirp.NewError(twirp.PermissionDenied, err.Error())
	case core.ErrCodeNotWhitelisted,
		core.ErrCodeNoAmount,
		core.ErrCodeSlippageExceeded,
		core.ErrCodeOverflow,
		core.ErrCodeFundsMismatch:
		twerr = twirp.NewError(twirp.InvalidArgument, err.Error())
	case core.ErrCodeSwapRejected:
		twerr = twirp.NewError(twirp.FailedPrecondition, err.Error())
	default:
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}
