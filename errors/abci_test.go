package errors

import (
	stdlib "errors"
	"testing"
)

func TestABCIInfoRoundTrip(t *testing.T) {
	cases := map[string]struct {
		err      error
		wantCode uint32
		wantRoot *Error
	}{
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
		},
		"registered error keeps its code": {
			err:      Wrap(ErrUnauthorized, "signature required"),
			wantCode: ErrUnauthorized.ABCICode(),
			wantRoot: ErrUnauthorized,
		},
		"stdlib error is internal": {
			err:      stdlib.New("disk on fire"),
			wantCode: internalABCICode,
			wantRoot: registry[internalABCICode],
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, false)
			if code != tc.wantCode {
				t.Fatalf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.err != nil && log == "" {
				t.Fatal("empty log")
			}

			err := ABCIError(code, log)
			if tc.wantRoot == nil {
				if err != nil {
					t.Fatalf("want no error, got %+v", err)
				}
				return
			}
			if !tc.wantRoot.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantRoot, err)
			}
		})
	}
}

func TestABCIErrorUnknownCode(t *testing.T) {
	err := ABCIError(987654, "no idea")
	if !registry[internalABCICode].Is(err) {
		t.Fatalf("want an internal error, got %+v", err)
	}
	if want, got := "987654: no idea: internal", err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
