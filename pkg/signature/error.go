package signature

// ErrorKind identifies a kind of signature encoding error. It satisfies the
// error interface so it can be matched with errors.Is.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrSigInvalidLen is returned when a compact signature does not have the
	// exact expected length.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrSigTooShort is returned when a DER signature is shorter than the
	// smallest possible encoding.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigTooLong is returned when a DER signature is longer than the
	// largest possible encoding for the curve.
	ErrSigTooLong = ErrorKind("ErrSigTooLong")

	// ErrSigInvalidSeqID is returned when a DER signature does not start with
	// the ASN.1 sequence ID.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when the sequence length of a DER
	// signature does not match the number of remaining bytes.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigInvalidRIntID is returned when R is not tagged as an ASN.1
	// integer.
	ErrSigInvalidRIntID = ErrorKind("ErrSigInvalidRIntID")

	// ErrSigZeroRLen is returned when R has a length of zero.
	ErrSigZeroRLen = ErrorKind("ErrSigZeroRLen")

	// ErrSigNegativeR is returned when R is encoded as a negative integer.
	ErrSigNegativeR = ErrorKind("ErrSigNegativeR")

	// ErrSigTooMuchRPadding is returned when R carries a redundant leading
	// zero byte.
	ErrSigTooMuchRPadding = ErrorKind("ErrSigTooMuchRPadding")

	// ErrSigRTooBig is returned when R does not fit the scalar width.
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")

	// ErrSigMissingSTypeID is returned when the signature ends before the
	// type ID of S.
	ErrSigMissingSTypeID = ErrorKind("ErrSigMissingSTypeID")

	// ErrSigMissingSLen is returned when the signature ends before the length
	// of S.
	ErrSigMissingSLen = ErrorKind("ErrSigMissingSLen")

	// ErrSigInvalidSLen is returned when the length of S does not match the
	// number of remaining bytes.
	ErrSigInvalidSLen = ErrorKind("ErrSigInvalidSLen")

	// ErrSigInvalidSIntID is returned when S is not tagged as an ASN.1
	// integer.
	ErrSigInvalidSIntID = ErrorKind("ErrSigInvalidSIntID")

	// ErrSigZeroSLen is returned when S has a length of zero.
	ErrSigZeroSLen = ErrorKind("ErrSigZeroSLen")

	// ErrSigNegativeS is returned when S is encoded as a negative integer.
	ErrSigNegativeS = ErrorKind("ErrSigNegativeS")

	// ErrSigTooMuchSPadding is returned when S carries a redundant leading
	// zero byte.
	ErrSigTooMuchSPadding = ErrorKind("ErrSigTooMuchSPadding")

	// ErrSigSTooBig is returned when S does not fit the scalar width.
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")

	// ErrSigInvalidPair is returned when encoding a pair whose halves do not
	// have the scalar width.
	ErrSigInvalidPair = ErrorKind("ErrSigInvalidPair")

	// ErrUnknownFormat is returned for an unrecognized format name.
	ErrUnknownFormat = ErrorKind("ErrUnknownFormat")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signature encoding. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
