//go:generate mockgen -destination=mock_greeremote.go -package=mocks github.com/hatstand/greeremote Carrier,Output
package mocks
