package user

type NameRequest struct {
	Name string `json:"name"`
}
