// Package campaign implements marketing campaign management.
//
// The service layer holds the campaign CRUD rules and the landing-page
// content generator, which renders headline, body and call-to-action
// banks per campaign type through the copywriter template engine. It
// depends on the Repository interface defined in this package and never
// imports net/http or database/sql directly.
//
// Repository implementations live in repository/postgres/ and repository/memory/.
package campaign
