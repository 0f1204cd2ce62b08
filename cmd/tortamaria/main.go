package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/app"
	"github.com/Yacsu77/tortamaria-go/internal/bag"
	"github.com/Yacsu77/tortamaria-go/internal/combo"
	"github.com/Yacsu77/tortamaria-go/internal/domain"
	"github.com/Yacsu77/tortamaria-go/internal/payment"
	"github.com/Yacsu77/tortamaria-go/internal/validate"
	"github.com/Yacsu77/tortamaria-go/pkg/currency"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	confFile = flag.String("c", "/etc/tortamaria.yml", "config file")
)

const usageText = `Usage: tortamaria [options] <command> [args]

Commands:
  register                cria uma conta de cliente
  login <email>           entra com email e senha
  logout                  encerra a conta local
  whoami                  mostra o cliente logado
  stores                  lista as lojas
  open <cnpj>             abre uma secao na loja (-entrega para entrega)
  close                   fecha a secao aberta sem pedido
  products                lista o cardapio
  stock                   lista o estoque da loja selecionada
  bag                     mostra a sacola
  add <produto>           poe um produto na sacola
  remove <produto>        tira uma unidade da sacola
  combo <fatia> <acomp>   monta um combo (fatia + salada + acompanhamento)
  rewards                 lista os produtos resgataveis por pontos
  points                  mostra o saldo de pontos
  redeem <produto>        poe um resgate de pontos na sacola
  coupon <codigo>         valida e aplica um cupom
  checkout                fecha a sacola e cria o pedido
  orders                  lista os pedidos do cliente
  order <id>              detalha um pedido
  cancel <id>             cancela um pedido
  pay-card <pedido>       paga um pedido no cartao
  pay-pix <pedido>        paga um pedido por PIX e acompanha o status
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if *h {
		usage()
		return
	}
	if *showVer {
		fmt.Println("tortamaria client 1.0")
		return
	}
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	application := app.NewApplication(config.LoadConfig(*confFile))
	if err := application.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "erro ao iniciar:", err)
		os.Exit(1)
	}
	defer application.Release()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := dispatch(ctx, application, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, a *app.Application, cmd string, args []string) error {
	switch cmd {
	case "register":
		return cmdRegister(ctx, a)
	case "login":
		return cmdLogin(ctx, a, args)
	case "logout":
		return a.Sessions().Logout()
	case "whoami":
		return cmdWhoami(a)
	case "stores":
		return cmdStores(ctx, a)
	case "open":
		return cmdOpen(ctx, a, args)
	case "close":
		return cmdClose(ctx, a)
	case "products":
		return cmdProducts(ctx, a)
	case "stock":
		return cmdStock(ctx, a)
	case "bag":
		return cmdBag(ctx, a)
	case "add":
		return cmdAdd(ctx, a, args)
	case "remove":
		return cmdRemove(ctx, a, args)
	case "combo":
		return cmdCombo(ctx, a, args)
	case "rewards":
		return cmdRewards(ctx, a)
	case "points":
		return cmdPoints(ctx, a)
	case "redeem":
		return cmdRedeem(ctx, a, args)
	case "coupon":
		return cmdCoupon(ctx, a, args)
	case "checkout":
		return cmdCheckout(ctx, a)
	case "orders":
		return cmdOrders(ctx, a)
	case "order":
		return cmdOrder(ctx, a, args)
	case "cancel":
		return cmdCancel(ctx, a, args)
	case "pay-card":
		return cmdPayCard(ctx, a, args)
	case "pay-pix":
		return cmdPayPIX(ctx, a, args)
	}
	usage()
	return fmt.Errorf("comando desconhecido: %s", cmd)
}

func argID(args []string, what string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("informe o %s", what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s invalido: %s", what, args[0])
	}
	return id, nil
}

var stdin = bufio.NewScanner(os.Stdin)

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !stdin.Scan() {
		return ""
	}
	return strings.TrimSpace(stdin.Text())
}

func cmdRegister(ctx context.Context, a *app.Application) error {
	req := domain.RegisterRequest{
		Name:       prompt("nome"),
		Email:      prompt("email"),
		Password:   prompt("senha"),
		Phone:      validate.Digits(prompt("telefone")),
		Address:    prompt("endereco"),
		Number:     prompt("numero"),
		Complement: prompt("complemento"),
	}
	req.CPF = validate.Digits(prompt("CPF"))
	if !validate.CPF(req.CPF) {
		return fmt.Errorf("CPF invalido")
	}
	req.CEP = validate.Digits(prompt("CEP"))
	if !validate.CEP(req.CEP) {
		return fmt.Errorf("CEP invalido")
	}
	if err := a.API().Register(ctx, req); err != nil {
		return err
	}
	fmt.Println("conta criada, faca login")
	return nil
}

func cmdLogin(ctx context.Context, a *app.Application, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("informe o email")
	}
	user, err := a.API().Login(ctx, args[0], prompt("senha"))
	if err != nil {
		return err
	}
	if err := a.Sessions().SaveUser(user); err != nil {
		return err
	}
	fmt.Printf("bem vindo, %s\n", user.Name)
	return nil
}

func cmdWhoami(a *app.Application) error {
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}
	fmt.Printf("%s  CPF %s  %s\n", user.Name, validate.MaskCPF(user.CPF), user.Email)
	return nil
}

func cmdStores(ctx context.Context, a *app.Application) error {
	stores, err := a.API().ListStores(ctx)
	if err != nil {
		return err
	}
	for _, s := range stores {
		fmt.Printf("%-18s %s, %s\n", s.CNPJ, s.Name, s.Address)
	}
	return nil
}

func cmdOpen(ctx context.Context, a *app.Application, args []string) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	delivery := fs.Bool("entrega", false, "secao de entrega em vez de retirada")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("informe o CNPJ da loja")
	}
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}
	cnpj := fs.Arg(0)

	stores, err := a.API().ListStores(ctx)
	if err != nil {
		return err
	}
	var store *domain.Store
	for i := range stores {
		if stores[i].CNPJ == cnpj {
			store = &stores[i]
			break
		}
	}
	if store == nil {
		return fmt.Errorf("loja nao encontrada: %s", cnpj)
	}

	mode := domain.FulfillmentPickup
	if *delivery {
		mode = domain.FulfillmentDelivery
	}
	section, err := a.API().CreateSection(ctx, user.CPF, cnpj, mode)
	if err != nil {
		return err
	}
	if err := a.Sessions().SaveStore(store); err != nil {
		return err
	}
	if err := a.Sessions().SaveSection(section); err != nil {
		return err
	}
	a.Gateway().UseStore(cnpj)
	fmt.Printf("secao %d aberta em %s (%s)\n", section.ID, store.Name, mode)
	return nil
}

func cmdClose(ctx context.Context, a *app.Application) error {
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}
	if err := a.API().CloseSection(ctx, section.ID); err != nil {
		return err
	}
	if err := a.Sessions().ClearSection(); err != nil {
		return err
	}
	fmt.Printf("secao %d fechada\n", section.ID)
	return nil
}

func cmdProducts(ctx context.Context, a *app.Application) error {
	categories, err := a.API().ListCategories(ctx)
	if err != nil {
		return err
	}
	products, err := a.API().ListProducts(ctx)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	for _, p := range products {
		fmt.Printf("%5d  %-30s %10s  %s\n", p.ID, p.Name, currency.Format(p.Price), names[p.CategoryID])
	}
	return nil
}

func cmdStock(ctx context.Context, a *app.Application) error {
	store := a.Sessions().SelectedStore()
	if store == nil {
		return fmt.Errorf("nenhuma loja selecionada, abra uma secao")
	}
	products, err := a.API().ListStock(ctx, store.CNPJ)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%5d  %-30s %10s\n", p.ID, p.Name, currency.Format(p.Price))
	}
	return nil
}

func cmdBag(ctx context.Context, a *app.Application) error {
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}
	summary, contents := a.Bag().Summarize(ctx, section, a.Coupons().Active())
	if err := contents.Err(); err != nil {
		return err
	}
	for _, g := range summary.Groups {
		fmt.Printf("%dx %-28s %10s\n", g.Quantity, g.Name, currency.Format(g.LineTotal()))
	}
	for _, c := range summary.Combos {
		fmt.Printf("1x combo %s + salada + %s %10s\n", c.FirstName, c.SecondName, currency.Format(bag.ComboPrice(c)))
	}
	for _, r := range summary.Redemptions {
		fmt.Printf("1x %-28s %7d pts\n", r.Name, r.PointCost)
	}
	fmt.Printf("subtotal %s\n", currency.Format(summary.Subtotal))
	if !summary.DeliveryFee.IsZero() {
		fmt.Printf("entrega  %s\n", currency.Format(summary.DeliveryFee))
	}
	if !summary.Discount.IsZero() {
		fmt.Printf("desconto -%s\n", currency.Format(summary.Discount))
	}
	fmt.Printf("total    %s\n", currency.Format(summary.Total))
	if summary.Points > 0 {
		fmt.Printf("pontos   %s\n", currency.FormatPoints(summary.Points))
	}
	return nil
}

func cmdAdd(ctx context.Context, a *app.Application, args []string) error {
	productID, err := argID(args, "produto")
	if err != nil {
		return err
	}
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}
	if err := a.Bag().AddItem(ctx, section.ID, productID); err != nil {
		return err
	}
	fmt.Printf("produto %d na sacola (%d itens)\n", productID, a.Bag().Count())
	return nil
}

func cmdRemove(ctx context.Context, a *app.Application, args []string) error {
	productID, err := argID(args, "produto")
	if err != nil {
		return err
	}
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}
	summary, contents := a.Bag().Summarize(ctx, section, nil)
	if err := contents.Err(); err != nil {
		return err
	}
	for _, g := range summary.Groups {
		if g.ProductID == productID {
			return a.Bag().RemoveUnit(ctx, g)
		}
	}
	return fmt.Errorf("produto %d nao esta na sacola", productID)
}

func cmdCombo(ctx context.Context, a *app.Application, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("informe a fatia e o acompanhamento")
	}
	sliceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("fatia invalida: %s", args[0])
	}
	sideID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("acompanhamento invalido: %s", args[1])
	}
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}

	catalog, err := combo.LoadCatalog(ctx, a.API())
	if err != nil {
		return err
	}
	builder := combo.NewBuilder()
	if err := builder.SelectSlice(pick(catalog.Slices, sliceID, "fatia")); err != nil {
		return err
	}
	if err := builder.ConfirmSalad(); err != nil {
		return err
	}
	if err := builder.SelectSide(pick(catalog.Sides, sideID, "acompanhamento")); err != nil {
		return err
	}
	if err := builder.Submit(ctx, a.Bag(), section.ID); err != nil {
		return err
	}
	fmt.Printf("combo na sacola, %s\n", currency.Format(builder.EstimateTotal()))
	return nil
}

// pick returns the combo product with the given id, or a zero product whose
// category will fail builder validation with a clear error.
func pick(products []domain.ComboProduct, id int64, what string) domain.ComboProduct {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	zap.S().Warnf("%s %d fora do catalogo", what, id)
	return domain.ComboProduct{ID: id}
}

func cmdRewards(ctx context.Context, a *app.Application) error {
	rewards, err := a.API().ListRewards(ctx)
	if err != nil {
		return err
	}
	for _, r := range rewards {
		fmt.Printf("%5d  %-30s %s\n", r.ID, r.Name, currency.FormatPoints(r.PointCost))
	}
	return nil
}

func cmdPoints(ctx context.Context, a *app.Application) error {
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}
	balance, err := a.API().PointsBalance(ctx, user.CPF)
	if err != nil {
		return err
	}
	fmt.Printf("saldo: %s\n", currency.FormatPoints(balance))
	return nil
}

func cmdRedeem(ctx context.Context, a *app.Application, args []string) error {
	productID, err := argID(args, "produto")
	if err != nil {
		return err
	}
	section, err := a.Sessions().CurrentSection()
	if err != nil {
		return err
	}
	if err := a.Bag().AddRedemption(ctx, section.ID, productID); err != nil {
		return err
	}
	fmt.Println("resgate na sacola")
	return nil
}

func cmdCoupon(ctx context.Context, a *app.Application, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("informe o codigo do cupom")
	}
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}
	coupon, err := a.Coupons().Validate(ctx, args[0], user.CPF)
	if err != nil {
		return err
	}
	if err := a.Coupons().Activate(ctx, coupon, user.CPF); err != nil {
		return err
	}
	fmt.Printf("cupom %s aplicado\n", coupon.Code)
	return nil
}

func cmdCheckout(ctx context.Context, a *app.Application) error {
	result, err := a.Checkout(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("pedido %d criado, total %s\n", result.OrderID, currency.Format(result.Summary.Total))
	fmt.Println("pague com: tortamaria pay-card", result.OrderID, "ou tortamaria pay-pix", result.OrderID)
	return nil
}

func cmdOrders(ctx context.Context, a *app.Application) error {
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}
	orders, err := a.API().ListOrders(ctx, user.CPF)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("%6d  %s %s  %10s  %s\n", o.ID, o.Date, o.Time, currency.Format(o.Total), o.Status.Label())
	}
	return nil
}

func cmdOrder(ctx context.Context, a *app.Application, args []string) error {
	orderID, err := argID(args, "pedido")
	if err != nil {
		return err
	}
	details, err := a.API().OrderDetails(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Printf("pedido %d  %s  %s\n", details.ID, details.SectionName, details.Status.Label())
	for _, line := range details.Lines {
		fmt.Printf("  %dx %-28s %10s\n", line.Quantity, line.Name, currency.Format(line.LineTotal()))
	}
	fmt.Printf("total %s\n", currency.Format(details.Total))
	return nil
}

func cmdCancel(ctx context.Context, a *app.Application, args []string) error {
	orderID, err := argID(args, "pedido")
	if err != nil {
		return err
	}
	if err := a.API().CancelOrder(ctx, orderID); err != nil {
		return err
	}
	fmt.Printf("pedido %d cancelado\n", orderID)
	return nil
}

func cmdPayCard(ctx context.Context, a *app.Application, args []string) error {
	orderID, err := argID(args, "pedido")
	if err != nil {
		return err
	}
	user := a.Sessions().User()
	if user == nil {
		return app.ErrNotLoggedIn
	}

	number := validate.Digits(prompt("numero do cartao"))
	if !validate.CardNumber(number) {
		return fmt.Errorf("numero de cartao invalido")
	}
	expiry := prompt("validade (MM/AA)")
	if !validate.CardExpiry(expiry) {
		return fmt.Errorf("validade invalida")
	}
	cvv := prompt("CVV")
	if !validate.CVV(cvv) {
		return fmt.Errorf("CVV invalido")
	}
	holder := prompt("nome no cartao")

	parts := strings.SplitN(expiry, "/", 2)
	pay, err := a.PayWithCard(ctx, orderID, payment.Card{
		Number:     number,
		ExpMonth:   parts[0],
		ExpYear:    parts[1],
		CVV:        cvv,
		HolderName: holder,
		HolderCPF:  user.CPF,
	})
	if err != nil {
		return fmt.Errorf("%s", payment.Translate(err))
	}
	fmt.Printf("pagamento %d: %s\n", pay.ID, pay.Status)
	return nil
}

func cmdPayPIX(ctx context.Context, a *app.Application, args []string) error {
	orderID, err := argID(args, "pedido")
	if err != nil {
		return err
	}
	charge, poller, err := a.StartPIXPayment(ctx, orderID)
	if err != nil {
		return fmt.Errorf("%s", payment.Translate(err))
	}
	fmt.Println("copia e cola:", charge.QRCode)
	fmt.Println("imagem:", charge.QRImageURL)
	fmt.Println("expira em:", charge.Expiration)
	fmt.Println("aguardando pagamento, Ctrl+C para parar de acompanhar")

	for update := range poller.Run(ctx) {
		fmt.Println("status:", update.Status)
		if update.Terminal {
			if err := a.ConfirmPayment(ctx, orderID, update.Status); err != nil {
				return err
			}
			if update.Status == payment.StatusApproved {
				fmt.Println("pagamento aprovado, pedido na fila da loja")
			}
			return nil
		}
	}
	return ctx.Err()
}
