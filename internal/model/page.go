package model

type PageState string

const (
	StateIdle       PageState = "idle"
	StateSelected   PageState = "selected"
	StateSubmitting PageState = "submitting"
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerWarning BannerKind = "warning"
	BannerError   BannerKind = "error"
)

type Banner struct {
	Kind BannerKind `json:"kind"`
	Text string     `json:"text"`
}
