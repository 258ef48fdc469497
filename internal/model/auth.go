package model

// AccessToken is the object embedded in the signed access tokens.
type AccessToken struct {
	ID string `mapstructure:"id" json:"id"`
}
