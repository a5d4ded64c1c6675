package models

// Enumerated field values are stored upper-cased. Normalization happens in the
// validation layer before any persistence call, so read paths can compare
// directly against these constants.

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleUser   Role = "USER"
)

type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
	GenderOther  Gender = "OTHER"
)

type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
)

type Category string

const (
	CategoryClothes     Category = "CLOTHES"
	CategoryElectronics Category = "ELECTRONICS"
	CategoryBooks       Category = "BOOKS"
	CategoryToiletries  Category = "TOILETRIES"
	CategoryFood        Category = "FOOD"
	CategoryDocuments   Category = "DOCUMENTS"
	CategoryOther       Category = "OTHER"
)

type ContainerType string

const (
	TypeBackpack ContainerType = "BACKPACK"
	TypeDuffel   ContainerType = "DUFFEL"
	TypeTote     ContainerType = "TOTE"
	TypeHandbag  ContainerType = "HANDBAG"
	TypeCarryOn  ContainerType = "CARRY_ON"
	TypeChecked  ContainerType = "CHECKED"
	TypeTrunk    ContainerType = "TRUNK"
)

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)
