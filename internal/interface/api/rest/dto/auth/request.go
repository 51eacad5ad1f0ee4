package auth

type TokenRequest struct {
	OauthKey     string `json:"oauth_key"`
	DisplayName  string `json:"display_name"`
	ClientSecret string `json:"client_secret"`
}
