package models

type Region string
type Category string
type AwardType string

const (
	RegionWest      Region = "west"
	RegionMidwest   Region = "midwest"
	RegionSouth     Region = "south"
	RegionNortheast Region = "northeast"

	CategoryJDM     Category = "jdm"
	CategoryEuro    Category = "euro"
	CategoryMuscle  Category = "muscle"
	CategoryTruck   Category = "truck"
	CategoryExotic  Category = "exotic"
	CategoryOffroad Category = "offroad"
	CategoryClassic Category = "classic"

	AwardFirstEntry      AwardType = "first_entry"
	AwardTenUpvotes      AwardType = "ten_upvotes"
	AwardHundredUpvotes  AwardType = "hundred_upvotes"
	AwardEditorsChoice   AwardType = "editors_choice"
	AwardCommunityPillar AwardType = "community_pillar"
)

// AllRegions - допустимые значения фильтра региона
var AllRegions = []Region{RegionWest, RegionMidwest, RegionSouth, RegionNortheast}

// AllCategories - допустимые значения категории билда
var AllCategories = []Category{
	CategoryJDM, CategoryEuro, CategoryMuscle,
	CategoryTruck, CategoryExotic, CategoryOffroad, CategoryClassic,
}
