package booking

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
    tests := []struct {
        in      string
        want    Status
        wantErr bool
    }{
        {"WAITING", StatusWaiting, false},
        {"Confirmed", StatusConfirmed, false},
        {"denied", StatusDenied, false},
        {" Waiting ", StatusWaiting, false},
        {"Bogus", "", true},
        {"", "", true},
        {"CANCELLED", "", true},
    }
    for _, tc := range tests {
        t.Run(tc.in, func(t *testing.T) {
            got, err := ParseStatus(tc.in)
            if tc.wantErr {
                require.ErrorIs(t, err, ErrUnknownStatus)
                return
            }
            require.NoError(t, err)
            require.Equal(t, tc.want, got)
        })
    }
}

func TestStatusOccupies(t *testing.T) {
    require.True(t, StatusWaiting.Occupies())
    require.True(t, StatusConfirmed.Occupies())
    require.False(t, StatusDenied.Occupies())
}

func TestParseEngineType(t *testing.T) {
    for _, in := range []string{"diesel", "Petrol", "ELECTRIC", "hybrid"} {
        got, err := ParseEngineType(in)
        require.NoError(t, err)
        require.NotEmpty(t, got)
    }
    _, err := ParseEngineType("steam")
    require.ErrorIs(t, err, ErrUnknownEngineType)
}
