package domain

import "strings"

// Profile is the person block of the state response.
type Profile struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	PhoneMob   string `json:"phoneMob"`
	Email      string `json:"email"`
}

// FullName joins last, first and middle names.
func (p Profile) FullName() string {
	return joinNames(p.LastName, p.FirstName, p.MiddleName)
}

// UserInfo is the account block of the state response.
type UserInfo struct {
	PrsID    int64  `json:"prsId"`
	Username string `json:"username"`
}

// State is the authenticated user's session state.
type State struct {
	UserID  int64    `json:"userId"`
	User    UserInfo `json:"user"`
	Profile *Profile `json:"profile"`
}

// ExtendedProfile is the profile/getProfile_new response.
type ExtendedProfile struct {
	Fio       string           `json:"fio"`
	Login     string           `json:"login"`
	BirthDate string           `json:"birthDate"`
	Data      ExtendedData     `json:"data"`
	Pupils    []PupilRecord    `json:"pupil"`
	Relations []PersonRelation `json:"prsRel"`
}

// ExtendedData holds identity fields of the extended profile.
type ExtendedData struct {
	PrsID  int64 `json:"prsId"`
	Gender int   `json:"gender"`
}

// PupilRecord is one school year enrollment.
type PupilRecord struct {
	YearID    int64  `json:"yearId"`
	EduYear   string `json:"eduYear"`
	ClassName string `json:"className"`
	Begin     string `json:"bvt"`
	End       string `json:"evt"`
	IsReady   int    `json:"isReady"`
}

// PersonRelation is a related person (parent, guardian).
type PersonRelation struct {
	RelName string       `json:"relName"`
	Data    RelationData `json:"data"`
}

// RelationData holds contact details of a related person.
type RelationData struct {
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	MobilePhone string `json:"mobilePhone"`
	HomePhone   string `json:"homePhone"`
	Email       string `json:"email"`
}

// FullName joins last, first and middle names.
func (r RelationData) FullName() string {
	return joinNames(r.LastName, r.FirstName, r.MiddleName)
}

// Phone returns the mobile phone, falling back to the home phone.
func (r RelationData) Phone() string {
	return CoalesceStr(r.MobilePhone, r.HomePhone)
}

// PupilUnit is a subject the pupil is enrolled in.
type PupilUnit struct {
	UnitID    FlexString `json:"unitId"`
	Name      string     `json:"name"`
	ShortName string     `json:"shortName"`
	IsOdod    int        `json:"isOdod"`
}

// PupilTask is an assignment from getLPartListPupil.
type PupilTask struct {
	PassDate   Millis `json:"passDt"`
	UnitName   string `json:"unitName"`
	Preview    string `json:"preview"`
	AttachCnt  int    `json:"attachCnt"`
	IsDone     int    `json:"isDone"`
	IsVerified int    `json:"isVerified"`
}

// Position is a role label attached to a person.
type Position struct {
	PosTypeName string `json:"posTypeName"`
}

// UserSearchItem is one entry of usr/getUserListSearch.
type UserSearchItem struct {
	PrsID     int64      `json:"prsId"`
	Fio       string     `json:"fio"`
	GroupName string     `json:"groupName"`
	IsStudent int        `json:"isStudent"`
	IsEmp     int        `json:"isEmp"`
	IsParent  int        `json:"isParent"`
	Positions []Position `json:"pos"`
}

// UserDirectory splits a user search result by role. A user may appear in
// more than one list.
type UserDirectory struct {
	Students []UserSearchItem
	Teachers []UserSearchItem
	Parents  []UserSearchItem
}

func joinNames(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
