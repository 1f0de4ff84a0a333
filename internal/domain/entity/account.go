package entity

// AwsAccount is a stored AWS credential set. AccessKey and SecretKey are opaque.
type AwsAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
}

// AwsAccountCreateParams carries the fields of a new credential set.
type AwsAccountCreateParams struct {
	Name      string `json:"name" validate:"required"`
	AccessKey string `json:"accessKey" validate:"required"`
	SecretKey string `json:"secretKey" validate:"required"`
}

// AwsAccountUpdateParams carries a partial update; nil fields are left untouched.
type AwsAccountUpdateParams struct {
	Name      *string `json:"name,omitempty"`
	AccessKey *string `json:"accessKey,omitempty"`
	SecretKey *string `json:"secretKey,omitempty"`
}
