package api

var pageTemplates = []string{
	"login",
	"register",
	"profile",
	"plants",
	"diary",
	"conditions",
	"references",
	"not_found",
}

var partialTemplateFiles = []string{"recommendation_partial.html"}
