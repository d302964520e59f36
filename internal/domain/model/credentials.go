package model

// Credentials holds the service-account credential set used to obtain a
// bearer token from the tenant's token-exchange endpoint.
type Credentials struct {
	Tenant   string
	APIKey   string
	Email    string
	Password string
}

// Missing returns the names of the credential fields that are empty, in
// declaration order. An empty result means the set is complete.
func (c Credentials) Missing() []string {
	var missing []string
	if c.Tenant == "" {
		missing = append(missing, "tenant")
	}
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}
