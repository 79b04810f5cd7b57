package api

// Service wrappers for grouped API access.

type AuthService struct{ r requester }

type UsersService struct{ Resource[User] }

type ProductsService struct{ Resource[Product] }

type StoresService struct{ Resource[Store] }

type SuppliersService struct{ Resource[Supplier] }

type StocksService struct{ Resource[Stock] }

// MovementsService only lists and creates; movements are immutable.
type MovementsService struct{ res Resource[Movement] }

type AttendanceService struct{ Resource[Attendance] }

type MessagesService struct{ Resource[Message] }

func (c *Client) Auth() AuthService {
	return AuthService{r: c}
}

func (c *Client) Users() UsersService {
	return UsersService{newResource[User](c, "user", "auth/users/")}
}

func (c *Client) Products() ProductsService {
	return ProductsService{newResource[Product](c, "product", "products/")}
}

func (c *Client) Stores() StoresService {
	return StoresService{newResource[Store](c, "store", "stores/")}
}

func (c *Client) Suppliers() SuppliersService {
	return SuppliersService{newResource[Supplier](c, "supplier", "suppliers/")}
}

func (c *Client) Stocks() StocksService {
	return StocksService{newResource[Stock](c, "stock", "stocks/")}
}

func (c *Client) Attendance() AttendanceService {
	return AttendanceService{newResource[Attendance](c, "attendance", "attendance/")}
}

func (c *Client) Messages() MessagesService {
	return MessagesService{newResource[Message](c, "message", "messages/")}
}
