package lcp

// Icon names a table icon. The Service accepts only the values below.
type Icon string

const (
	IconAddressBook  Icon = "address-book"
	IconArchive      Icon = "archive"
	IconBank         Icon = "bank"
	IconBell         Icon = "bell"
	IconBook         Icon = "book"
	IconBookmark     Icon = "bookmark"
	IconBriefcase    Icon = "briefcase"
	IconBug          Icon = "bug"
	IconBuilding     Icon = "building"
	IconCalendar     Icon = "calendar"
	IconCamera       Icon = "camera"
	IconCar          Icon = "car"
	IconChart        Icon = "chart"
	IconCheckSquare  Icon = "check-square"
	IconClipboard    Icon = "clipboard"
	IconClock        Icon = "clock"
	IconCloud        Icon = "cloud"
	IconCode         Icon = "code"
	IconCog          Icon = "cog"
	IconComments     Icon = "comments"
	IconCreditCard   Icon = "credit-card"
	IconDatabase     Icon = "database"
	IconDollar       Icon = "dollar"
	IconEnvelope     Icon = "envelope"
	IconFile         Icon = "file"
	IconFlag         Icon = "flag"
	IconFolder       Icon = "folder"
	IconGift         Icon = "gift"
	IconGlobe        Icon = "globe"
	IconHeart        Icon = "heart"
	IconHome         Icon = "home"
	IconImage        Icon = "image"
	IconInbox        Icon = "inbox"
	IconKey          Icon = "key"
	IconLaptop       Icon = "laptop"
	IconLightbulb    Icon = "lightbulb"
	IconList         Icon = "list"
	IconLock         Icon = "lock"
	IconMapMarker    Icon = "map-marker"
	IconMoney        Icon = "money"
	IconPaperclip    Icon = "paperclip"
	IconPhone        Icon = "phone"
	IconPuzzle       Icon = "puzzle"
	IconRocket       Icon = "rocket"
	IconShoppingCart Icon = "shopping-cart"
	IconStar         Icon = "star"
	IconTable        Icon = "table"
	IconTag          Icon = "tag"
	IconTasks        Icon = "tasks"
	IconTicket       Icon = "ticket"
	IconTrophy       Icon = "trophy"
	IconTruck        Icon = "truck"
	IconUser         Icon = "user"
	IconUsers        Icon = "users"
	IconWrench       Icon = "wrench"
)

var validIcons = map[Icon]struct{}{
	IconAddressBook: {}, IconArchive: {}, IconBank: {}, IconBell: {}, IconBook: {},
	IconBookmark: {}, IconBriefcase: {}, IconBug: {}, IconBuilding: {}, IconCalendar: {},
	IconCamera: {}, IconCar: {}, IconChart: {}, IconCheckSquare: {}, IconClipboard: {},
	IconClock: {}, IconCloud: {}, IconCode: {}, IconCog: {}, IconComments: {},
	IconCreditCard: {}, IconDatabase: {}, IconDollar: {}, IconEnvelope: {}, IconFile: {},
	IconFlag: {}, IconFolder: {}, IconGift: {}, IconGlobe: {}, IconHeart: {},
	IconHome: {}, IconImage: {}, IconInbox: {}, IconKey: {}, IconLaptop: {},
	IconLightbulb: {}, IconList: {}, IconLock: {}, IconMapMarker: {}, IconMoney: {},
	IconPaperclip: {}, IconPhone: {}, IconPuzzle: {}, IconRocket: {}, IconShoppingCart: {},
	IconStar: {}, IconTable: {}, IconTag: {}, IconTasks: {}, IconTicket: {},
	IconTrophy: {}, IconTruck: {}, IconUser: {}, IconUsers: {}, IconWrench: {},
}

// Valid reports whether i is a known icon name.
func (i Icon) Valid() bool {
	_, ok := validIcons[i]

	return ok
}
